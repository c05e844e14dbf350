package ezserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/LienoPC/EZ-Electronics-sub000/internal/shared/errors"
)

var problemTemplates = map[int]apierrors.ProblemDetail{
	http.StatusBadRequest:          apierrors.ErrBadRequest,
	http.StatusUnauthorized:        apierrors.ErrUnauthorized,
	http.StatusForbidden:           apierrors.ErrForbidden,
	http.StatusNotFound:            apierrors.ErrNotFound,
	http.StatusConflict:            apierrors.ErrConflict,
	http.StatusUnprocessableEntity: apierrors.ErrUnprocessable,
}

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError turns a status plus error into an RFC 7807 response so
// handler call sites stay one line.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	template, ok := problemTemplates[status]
	if !ok {
		template = apierrors.ErrInternal
	}
	respondProblem(c, template.WithDetail(err.Error()))
}
