package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type pageRequest struct {
	Limit int    `query:"limit" default:"20" validate:"gte=1,lte=100"`
	Order string `query:"order" default:"desc" validate:"oneof=asc desc"`
}

func bindTarget(method, target string) (*pageRequest, []ValidationError) {
	c := echo.New().NewContext(httptest.NewRequest(method, target, nil), httptest.NewRecorder())
	req := &pageRequest{}
	return req, BindQuery(c, req)
}

func TestBindQueryDefaultsAndOverrides(t *testing.T) {
	req, errs := bindTarget(http.MethodGet, "/x")
	if errs != nil || req.Limit != 20 || req.Order != "desc" {
		t.Fatalf("defaults: %+v %v", req, errs)
	}
	req, errs = bindTarget(http.MethodPost, "/x?limit=7&order=asc")
	if errs != nil || req.Limit != 7 || req.Order != "asc" {
		t.Fatalf("post query: %+v %v", req, errs)
	}
}

func TestBindQueryErrors(t *testing.T) {
	_, errs := bindTarget(http.MethodGet, "/x?limit=0")
	if len(errs) != 1 || errs[0].Field != "limit" || errs[0].Code != "ERR_GTE" {
		t.Fatalf("explicit zero: %+v", errs)
	}
	if errs[0].Message != "limit must be at least 1" || errs[0].Params["min"] != "1" {
		t.Fatalf("message: %+v", errs[0])
	}

	_, errs = bindTarget(http.MethodGet, "/x?order=up")
	if len(errs) != 1 || errs[0].Field != "order" || errs[0].Message != "order must be one of: asc, desc" {
		t.Fatalf("oneof: %+v", errs)
	}

	_, errs = bindTarget(http.MethodGet, "/x?limit=many")
	if len(errs) != 1 || errs[0].Code != "ERR_BIND" {
		t.Fatalf("bind: %+v", errs)
	}
}
