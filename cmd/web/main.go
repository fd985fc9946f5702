package main

import "github.com/gabrielliborges-web/Desafio-Tech-Back/internal/app"

func main() {
	app.Run()
}
