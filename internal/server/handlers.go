package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/ranking"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/resumes"
	"github.com/jonathan/resume-tailor/internal/selection"
	"github.com/jonathan/resume-tailor/internal/styling"
	"github.com/jonathan/resume-tailor/internal/types"
)

// AnalyzeRequest represents the request body for /v1/analyze
type AnalyzeRequest struct {
	JobText string `json:"job_text" validate:"required"`
}

// TailorRequest represents the request body for /v1/tailor
type TailorRequest struct {
	Resume       json.RawMessage `json:"resume" validate:"required"`
	JobText      string          `json:"job_text" validate:"required"`
	PageMode     string          `json:"page_mode,omitempty" validate:"omitempty,oneof=auto single-page multi-page"`
	Format       string          `json:"format,omitempty" validate:"omitempty,oneof=markdown json html latex"`
	Style        string          `json:"style,omitempty" validate:"omitempty,oneof=none rules"`
	Theme        string          `json:"theme,omitempty"`
	OmitAnalysis bool            `json:"omit_analysis,omitempty"`
}

// TailorReport summarizes what a tailoring run found and changed
type TailorReport struct {
	Signals         *types.JobSignals     `json:"signals"`
	Optimization    *selection.Report     `json:"optimization,omitempty"`
	Education       *ranking.EducationFit `json:"education"`
	ExperienceYears float64               `json:"experience_years"`
	Warnings        []string              `json:"warnings,omitempty"`
}

// TailorResponse represents the response for /v1/tailor
type TailorResponse struct {
	RunID    string        `json:"run_id"`
	Resume   *types.Resume `json:"resume"`
	Report   *TailorReport `json:"report"`
	Format   string        `json:"format"`
	Theme    string        `json:"theme"`
	Rendered string        `json:"rendered"`
}

// newRequestValidator reports field names by their JSON key
func newRequestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest reads a bounded JSON body into dst and validates it
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			msg := "is invalid"
			switch fe.Tag() {
			case "required":
				msg = "is required"
			case "oneof":
				msg = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
			}
			return &ErrValidation{Field: fe.Field(), Message: msg}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleAnalyze extracts job signals from posting text
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.extractor.Extract(req.JobText))
}

// handleTailor runs the full pipeline and renders the result
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	resp, err := s.tailor(r.Context(), &req, nil)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleTailorStream runs the pipeline and streams progress via SSE
func (s *Server) handleTailorStream(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp, err := s.tailor(r.Context(), &req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	if err := sse.WriteEvent("result", resp); err != nil {
		log.Printf("Error writing SSE result: %v", err)
	}
}

// tailor parses the request resume, runs the pipeline and renders the output
func (s *Server) tailor(ctx context.Context, req *TailorRequest, onProgress pipeline.ProgressCallback) (*TailorResponse, error) {
	if bytes.Equal(bytes.TrimSpace(req.Resume), []byte("null")) {
		return nil, &ErrValidation{Field: "resume", Message: "is required"}
	}
	resume, err := resumes.Parse(req.Resume, "request")
	if err != nil {
		return nil, err
	}

	format, err := rendering.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}
	mode, err := pipeline.ParsePageMode(req.PageMode)
	if err != nil {
		return nil, &ErrValidation{Field: "page_mode", Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := pipeline.Tailor(ctx, pipeline.Options{
		Resume:     resume,
		JobText:    req.JobText,
		PageMode:   mode,
		Extractor:  s.extractor,
		Ranker:     s.ranker,
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("tailoring failed: %w", err)
	}

	theme, err := s.chooseTheme(ctx, req, result.Signals)
	if err != nil {
		return nil, err
	}

	rendered, err := rendering.Render(result.Resume, format, rendering.Options{
		Theme:           theme,
		ExperienceYears: result.ExperienceYears,
		EducationFit:    result.Education,
		OmitAnalysis:    req.OmitAnalysis,
	})
	if err != nil {
		return nil, err
	}

	return &TailorResponse{
		RunID:  result.RunID,
		Resume: result.Resume,
		Report: &TailorReport{
			Signals:         result.Signals,
			Optimization:    result.Optimization,
			Education:       result.Education,
			ExperienceYears: result.ExperienceYears,
			Warnings:        result.Warnings,
		},
		Format:   string(format),
		Theme:    theme.Name,
		Rendered: rendered,
	}, nil
}

// chooseTheme honors an explicit theme name, otherwise asks the style classifier
func (s *Server) chooseTheme(ctx context.Context, req *TailorRequest, signals *types.JobSignals) (styling.Theme, error) {
	if req.Theme != "" {
		theme, err := styling.Lookup(req.Theme)
		if err != nil {
			return styling.Theme{}, &ErrValidation{Field: "theme", Message: err.Error()}
		}
		return theme, nil
	}

	classifier, err := styling.NewClassifier(styling.Mode(req.Style), nil)
	if err != nil {
		return styling.Theme{}, &ErrValidation{Field: "style", Message: err.Error()}
	}
	return classifier.Classify(ctx, signals)
}
