package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/common"
)

func TestWriteErrorRendersCodeAndMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	WriteError(ctx, http.StatusNotFound,
		common.NewError("0d6477f0-7f83-4a6f-9b5e-1e3f6f5ad9a2", "video not found"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.True(t, ctx.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "0d6477f0-7f83-4a6f-9b5e-1e3f6f5ad9a2", body.Code)
	assert.Equal(t, "video not found", body.Error)
}
