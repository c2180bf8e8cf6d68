package main

import (
	"etfoptimizer/cmd"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func main() {
	fmt.Println(os.Getenv("commit_hash"))
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	err = deps.ApiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
