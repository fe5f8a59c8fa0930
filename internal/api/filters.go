package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/photo-filters/internal/adapter"
	"github.com/rm-hull/photo-filters/internal/engine"
	"github.com/rm-hull/photo-filters/internal/filter"
	"github.com/rm-hull/photo-filters/internal/models/filters"
	"github.com/rm-hull/photo-filters/internal/photo"
	"github.com/rm-hull/photo-filters/internal/photo/stage"
	"github.com/rm-hull/photo-filters/internal/pixbuf"
	log "github.com/sirupsen/logrus"
)

var (
	errBadRequest     = errors.New("bad request")
	errUnknownFilter  = errors.New("unknown filter")
	commonPostFilters = []filters.Parameter{
		{Name: "blur", Type: "number", Description: "Gaussian blur sigma applied to the result"},
		{Name: "greyscale", Type: "boolean", Default: "false", Description: "convert the result to greyscale"},
	}
)

func RegisterFilterRoutes(r gin.IRouter) {
	v1 := r.Group("/v1/filters")
	v1.GET("", ListFilters)
	v1.POST("/:name", ApplyFilter)
}

// Catalogue describes every filter, its operands and its form parameters.
func Catalogue() filters.ListResponse {
	resp := filters.ListResponse{Filters: make([]filters.Filter, 0, len(filter.Kinds))}
	for _, kind := range filter.Kinds {
		f := filters.Filter{
			Name:     kind.String(),
			Aliases:  kind.Aliases(),
			Operands: []string{"image"},
		}
		switch kind {
		case filter.Shear:
			f.Parameters = []filters.Parameter{
				{Name: "angle", Type: "number", Description: "shear angle in degrees, strictly between -90 and 90; defaults to atan(height/(2*width))"},
				{Name: "scale", Type: "number", Default: strconv.FormatFloat(engine.DefaultVerticalScale, 'g', -1, 64), Description: "vertical scale applied to each column, at least 1/1024"},
			}
		case filter.Rotate90:
			f.Parameters = []filters.Parameter{
				{Name: "direction", Type: "string", Default: engine.Clockwise.String(), Description: "cw, ccw or 180"},
			}
		case filter.Composite:
			f.Operands = append(f.Operands, "bottom")
		}
		f.Parameters = append(f.Parameters, commonPostFilters...)
		resp.Filters = append(resp.Filters, f)
	}
	return resp
}

func ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, Catalogue())
}

func ApplyFilter(c *gin.Context) {
	req, extra, err := parseRequest(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out, err := filter.Apply(*req, extra...)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := adapter.Write(&buf, out, adapter.PNG); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func parseRequest(c *gin.Context) (*filter.Request, []photo.Stage, error) {
	kind, err := filter.ParseKind(c.Param("name"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", errUnknownFilter, c.Param("name"))
	}
	req := &filter.Request{Kind: kind}

	names := []string{"image"}
	if kind == filter.Composite {
		names = append(names, "bottom")
	}
	for _, name := range names {
		img, err := formImage(c, name)
		if err != nil {
			return nil, nil, err
		}
		req.Operands = append(req.Operands, img)
	}

	if v, ok := c.GetPostForm("angle"); ok {
		angle, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: angle %q is not a number", errBadRequest, v)
		}
		req.ShearAngle = &angle
	}
	if v, ok := c.GetPostForm("scale"); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || !(scale >= engine.MinScale) || math.IsInf(scale, 0) {
			return nil, nil, fmt.Errorf("%w: scale %q must be a number no smaller than %v", errBadRequest, v, engine.MinScale)
		}
		req.VerticalScale = scale
	}
	if v, ok := c.GetPostForm("direction"); ok {
		req.Direction, err = engine.ParseDirection(v)
		if err != nil {
			return nil, nil, err
		}
	}

	var extra []photo.Stage
	if v, ok := c.GetPostForm("blur"); ok {
		sigma, err := strconv.ParseFloat(v, 64)
		if err != nil || sigma < 0 {
			return nil, nil, fmt.Errorf("%w: blur %q must be a non-negative number", errBadRequest, v)
		}
		extra = append(extra, &stage.GaussianBlurStage{Sigma: sigma})
	}
	if v, ok := c.GetPostForm("greyscale"); ok {
		grey, err := strconv.ParseBool(v)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: greyscale %q must be true or false", errBadRequest, v)
		}
		if grey {
			extra = append(extra, &stage.GreyscaleStage{})
		}
	}
	return req, extra, nil
}

func formImage(c *gin.Context, name string) (image.Image, error) {
	header, err := c.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %q image: %v", errBadRequest, name, err)
	}
	return openImage(header)
}

func openImage(header *multipart.FileHeader) (image.Image, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errBadRequest, header.Filename, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := adapter.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", header.Filename, err)
	}
	return img, nil
}

// StatusFor maps an error onto the HTTP status returned to the client.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownFilter):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, pixbuf.ErrInvalidArgument),
		errors.Is(err, pixbuf.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, pixbuf.ErrDecode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("filter failed")
	}
	c.AbortWithStatusJSON(status, filters.ErrorResponse{Error: err.Error()})
}
