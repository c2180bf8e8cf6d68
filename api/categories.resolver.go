package api

import (
	"github.com/gin-gonic/gin"
)

type categoryJson struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type CategoriesResponse struct {
	// categories grouped by type, e.g. "region" -> [...]
	Categories map[string][]categoryJson `json:"categories"`
}

func (m ApiHandler) categories(c *gin.Context) {
	categories, err := m.CategoryRepository.List()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := CategoriesResponse{
		Categories: map[string][]categoryJson{},
	}
	for _, category := range categories {
		out.Categories[category.Type] = append(out.Categories[category.Type], categoryJson{
			ID:   category.ID,
			Name: category.Name,
		})
	}

	c.JSON(200, out)
}
