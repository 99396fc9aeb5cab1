package handler

import (
	"bytes"
	"fmt"
	"net/http"

	frontend_domain "github.com/cathome-dev/cathome/frontend/internal/domain"
	"github.com/cathome-dev/cathome/shared/logger"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and shared data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := frontend_domain.CommonTemplateData{
		User:       mw.GetUserFromContext(r),
		Validation: h.validationData(),
	}
	common.Error = popFlash(w, r, flashCookieError)
	common.Success = popFlash(w, r, flashCookieSuccess)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{Data: data, Common: common}

	// Execute into a buffer first so a template fault never leaks half a
	// page.
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
