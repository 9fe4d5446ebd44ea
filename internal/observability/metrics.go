package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedQueriesTotal counts feed queries by sort order.
	FeedQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityfeed_feed_queries_total",
		Help: "Total number of feed queries by sort order",
	}, []string{"sort"})

	// ReactionTogglesTotal counts like/dislike toggles by kind and resulting state.
	ReactionTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityfeed_reaction_toggles_total",
		Help: "Total number of reaction toggles by kind and resulting state",
	}, []string{"kind", "state"})

	// PostsCreatedTotal counts created posts by post type.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityfeed_posts_created_total",
		Help: "Total number of created posts by type",
	}, []string{"post_type"})

	// MediaUploadsTotal counts media adapter uploads by outcome.
	MediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityfeed_media_uploads_total",
		Help: "Total number of media uploads by outcome",
	}, []string{"outcome"})
)
