package main

import (
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
