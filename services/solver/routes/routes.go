// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"net/http"

	"github.com/AleutianAI/quadsolve/services/solver/engine"
	"github.com/AleutianAI/quadsolve/services/solver/handlers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all endpoints. v1Middleware runs only on the /v1
// group, so health checks and scrapes are never rate limited.
func SetupRoutes(router *gin.Engine, solver engine.Solver, metrics http.Handler, v1Middleware ...gin.HandlerFunc) {
	router.GET("/health", handlers.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	// API version 1 group
	v1 := router.Group("/v1", v1Middleware...)
	{
		v1.POST("/solve", handlers.HandleSolve(solver))
		v1.GET("/solve", handlers.HandleSolveQuery(solver))
	}
}
