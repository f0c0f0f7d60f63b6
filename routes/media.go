package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/services"
	"github.com/navbryce/yatube/util"
)

type mediaRoutes struct {
	store *services.MemoryAttachmentStore
}

// AddMediaRoutes serves uploads kept by a MemoryAttachmentStore. Bucket
// uploads are served by the bucket itself.
func AddMediaRoutes(group *gin.RouterGroup, store *services.MemoryAttachmentStore) {
	routes := mediaRoutes{store}
	group.GET(services.MediaPrefix+"*blob", routes.getMedia)
}

func (mr *mediaRoutes) getMedia(c *gin.Context) {
	contentType, content, ok := mr.store.Get(strings.TrimPrefix(c.Param("blob"), "/"))
	if !ok {
		util.HandleHTTPErrorRes(c, &util.NotFoundHTTPErr)
		return
	}
	c.Data(http.StatusOK, contentType, content)
}
