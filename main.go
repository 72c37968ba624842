package main

import (
	"log"

	"github.com/PranjalBarnwal/quizApp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
