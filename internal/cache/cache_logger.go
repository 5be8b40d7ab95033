package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// propagating failures: a stale cache entry is preferable to a failed write.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys with logging.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserDashboards drops every cached dashboard derived from the
// user's mood entries: their own student dashboard and any parent view over
// them. Called after each successful check-in write.
func InvalidateUserDashboards(ctx context.Context, cm *CacheManager, userID uint) {
	SafeInvalidatePattern(ctx, cm.Dashboard, fmt.Sprintf("student:%d:*", userID))
	SafeInvalidatePattern(ctx, cm.Dashboard, fmt.Sprintf("parent:%d:*", userID))
}
