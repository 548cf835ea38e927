package main

import (
	"github.com/corray333/cafe-order/internal/app"
	"github.com/corray333/cafe-order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
