package main

import (
	"github.com/bwaremarkt/storefront/internal/app"
	"github.com/bwaremarkt/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
