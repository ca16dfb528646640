package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk-dev/jobdesk/internal/types"
)

func CurrentViewer(ctx *gin.Context) (types.Viewer, error) {
	value, exists := ctx.Get(types.ContextViewerKey)

	if !exists {
		return types.Viewer{}, fmt.Errorf("user not authenticated")
	}

	viewer, ok := value.(types.Viewer)

	if !ok {
		return types.Viewer{}, fmt.Errorf("invalid viewer type in context")
	}

	return viewer, nil
}
