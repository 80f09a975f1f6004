package renderer

import (
	"github.com/unrolled/render"

	"github.com/bulanstore/bulan-api/app/configs"
)

func New() *render.Render {
	return render.New(render.Options{
		IndentJSON: configs.LoadENV.AppEnv != "production",
	})
}
