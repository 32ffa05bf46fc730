package view

import (
	"embed"
	"log"

	"github.com/josetomecore/P6-Quiz/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/render"
)

//go:embed all:templates
var templates embed.FS

type Renderer struct {
	r *render.Render
}

func New() *Renderer {
	return &Renderer{r: render.New(render.Options{
		Directory:  "templates",
		FileSystem: &render.EmbedFileSystem{FS: templates},
		Extensions: []string{".tmpl"},
		Layout:     "layout",
	})}
}

// HTML renders the named template inside the layout. Pending flash
// messages and the current user are added to data, and the session is
// saved before the body is written.
func (v *Renderer) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = session.Flashes(c)
	data["currentUser"] = session.CurrentUser(c)

	if err := session.Save(c); err != nil {
		log.Printf("view: session save error: %v", err)
	}
	if err := v.r.HTML(c.Writer, status, name, data); err != nil {
		log.Printf("view: render %s error: %v", name, err)
	}
}
