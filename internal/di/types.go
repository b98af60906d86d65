/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to handlers for access to services.
 */
package di

import (
	"github.com/aristath/allocator/internal/metrics"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/recommendation"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/modules/universe"
)

// Container holds all application dependencies
type Container struct {
	// Data loaded once at start-up
	Universe     *universe.Universe
	ScoringTable *riskprofile.Table

	// Engine components
	Scorer    *riskprofile.Scorer
	Optimizer *optimization.MVOptimizer

	// Services
	RecommendationService *recommendation.Service

	// Instrumentation
	Metrics *metrics.Registry
}
