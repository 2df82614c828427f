package http

import (
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathID binds a uuid path parameter the way generated oapi-codegen servers
// do.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return toKernelID(name, raw)
}

// queryID binds an optional uuid query parameter.
func queryID(c echo.Context, name string) (*kernel.UUID, error) {
	value := c.QueryParam(name)
	if value == "" {
		return nil, nil
	}

	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("form", name, value, &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationQuery, Explode: true, Required: false})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	id, err := toKernelID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toKernelID(name string, raw uuid.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return id, nil
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
