package api

import (
	"github.com/gin-gonic/gin"
)

type etfJson struct {
	Isin string  `json:"isin"`
	Wkn  *string `json:"wkn"`
	Name *string `json:"name"`
}

type EtfsResponse struct {
	Etfs []etfJson `json:"etfs"`
}

// etfs lists the security catalog.
func (m ApiHandler) etfs(c *gin.Context) {
	models, err := m.EtfRepository.List()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := EtfsResponse{Etfs: []etfJson{}}
	for _, e := range models {
		out.Etfs = append(out.Etfs, etfJson{
			Isin: e.Isin,
			Wkn:  e.Wkn,
			Name: e.Name,
		})
	}

	c.JSON(200, out)
}
