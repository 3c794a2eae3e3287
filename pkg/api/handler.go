// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/placewise/placematch/internal/matcher"
	"github.com/placewise/placematch/pkg/utils"
)

// ScoreRequest is the body of POST /v1/score.
type ScoreRequest struct {
	matcher.Query
	Candidate matcher.Place `json:"candidate"`
}

// FeedbackRequest is the body of POST /v1/feedback.
type FeedbackRequest struct {
	matcher.Query
	Candidate matcher.Place `json:"candidate"`
	Correct   *bool         `json:"correct"`
}

// ScoreHandler returns the match confidence for one candidate.
func ScoreHandler(engine *matcher.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, err)
			return
		}
		if req.Name == "" {
			utils.SendError(c, http.StatusBadRequest, errors.New("name is required"))
			return
		}
		score := engine.Predict(req.Query, req.Candidate)
		utils.SendJSON(c, http.StatusOK, "", gin.H{"confidence": score})
	}
}

// FeedbackHandler ingests one correctness judgment. It always returns 202:
// feedback processing is side-effecting only and never fails the caller.
func FeedbackHandler(engine *matcher.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, err)
			return
		}
		if req.Correct == nil {
			utils.SendError(c, http.StatusBadRequest, errors.New("correct is required"))
			return
		}
		engine.Train(req.Query, req.Candidate, *req.Correct)
		utils.SendJSON(c, http.StatusAccepted, "feedback recorded", nil)
	}
}

// SimilarHandler returns previously confirmed locations with names close to
// the q parameter.
func SimilarHandler(engine *matcher.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		text := c.Query("q")
		if text == "" {
			utils.SendError(c, http.StatusBadRequest, errors.New("q is required"))
			return
		}
		limit := 5
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				utils.SendError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
				return
			}
			limit = n
		}
		results := engine.SearchSimilar(text, limit)
		utils.SendJSON(c, http.StatusOK, "", gin.H{"results": results})
	}
}

// HealthHandler reports liveness plus an engine stats snapshot.
func HealthHandler(engine *matcher.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SendJSON(c, http.StatusOK, "ok", engine.Stats())
	}
}

// SetupRoutes wires the API onto the router.
func SetupRoutes(router *gin.Engine, engine *matcher.Engine) {
	router.Use(RequestLogger())

	v1 := router.Group("/v1")
	v1.POST("/score", ScoreHandler(engine))
	v1.POST("/feedback", FeedbackHandler(engine))
	v1.GET("/similar", SimilarHandler(engine))

	router.GET("/health", HealthHandler(engine))
}
