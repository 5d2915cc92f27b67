// cmd/cessionarios/main.go
package main

import (
	"context"
	"log"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
