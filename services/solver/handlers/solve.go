// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers implements the HTTP endpoints of the solver service.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AleutianAI/quadsolve/pkg/quadratic"
	"github.com/AleutianAI/quadsolve/pkg/validation"
	"github.com/AleutianAI/quadsolve/services/solver/engine"
	"github.com/AleutianAI/quadsolve/services/solver/middleware"
	"github.com/AleutianAI/quadsolve/services/solver/observability"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// CodeInvalidRequest is returned when the body cannot be decoded or bound.
const CodeInvalidRequest = "invalid_request"

// SolveRequest is the body of POST /v1/solve.
//
// Coefficients are kept as raw JSON values so that strings, booleans and
// nulls reach the solver and are reported as non-numeric rather than
// failing decoding.
type SolveRequest struct {
	A         any    `json:"a"`
	B         any    `json:"b"`
	C         any    `json:"c"`
	RequestID string `json:"request_id" binding:"omitempty,uuid4"`
}

// SolveResponse is the success body for both solve endpoints.
type SolveResponse struct {
	Roots        quadratic.Roots `json:"roots"`
	Count        int             `json:"count"`
	Discriminant any             `json:"discriminant"`
	RequestID    string          `json:"request_id"`
}

// ErrorResponse is the failure body for both solve endpoints.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleSolve serves POST /v1/solve.
//
// # Responses
//
//   - 200 SolveResponse
//   - 400 non_numeric_coefficient, or invalid_request for a bad body
//   - 422 degenerate_coefficient
func HandleSolve(s engine.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SolveRequest

		dec := json.NewDecoder(c.Request.Body)
		dec.UseNumber()
		if err := decodeSingle(dec, &req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     CodeInvalidRequest,
				Message:   "malformed JSON body",
				RequestID: middleware.GetRequestID(c),
			})
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     CodeInvalidRequest,
				Message:   "request_id must be a UUIDv4",
				RequestID: middleware.GetRequestID(c),
			})
			return
		}

		requestID := req.RequestID
		if requestID == "" {
			requestID = middleware.GetRequestID(c)
		}

		ctx := engine.WithEndpoint(c.Request.Context(), observability.EndpointHTTPPost)
		res, err := s.Solve(ctx, req.A, req.B, req.C)
		respond(c, res, err, requestID)
	}
}

// HandleSolveQuery serves GET /v1/solve?a=..&b=..&c=..
//
// Query values are parsed as decimal floats; anything else is a
// non-numeric coefficient.
func HandleSolveQuery(s engine.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := middleware.GetRequestID(c)

		coeffs, err := validation.ParseCoefficients(c.Query("a"), c.Query("b"), c.Query("c"))
		ctx := engine.WithEndpoint(c.Request.Context(), observability.EndpointHTTPGet)
		if err != nil {
			respond(c, s.Reject(ctx, err), err, requestID)
			return
		}

		res, err := s.Solve(ctx, coeffs.A, coeffs.B, coeffs.C)
		respond(c, res, err, requestID)
	}
}

// decodeSingle decodes exactly one JSON value and rejects anything but
// whitespace after it.
func decodeSingle(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func respond(c *gin.Context, res engine.Result, err error, requestID string) {
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{
			Error:     quadratic.Code(err),
			Message:   err.Error(),
			RequestID: requestID,
		})
		return
	}

	c.JSON(http.StatusOK, SolveResponse{
		Roots:        res.Roots,
		Count:        len(res.Roots),
		Discriminant: quadratic.JSONFloat(res.Discriminant),
		RequestID:    requestID,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quadratic.ErrNonNumericCoefficient):
		return http.StatusBadRequest
	case errors.Is(err, quadratic.ErrDegenerateCoefficient):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
