package users

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ongood/metabase-sub001/internal/db/models"
	"github.com/ongood/metabase-sub001/internal/telemetry"
)

// PathSet is a set of permission object paths such as "/collection/12/".
type PathSet map[string]struct{}

// Contains reports whether path is in the set.
func (p PathSet) Contains(path string) bool {
	_, ok := p[path]
	return ok
}

// Sorted returns the paths in lexical order.
func (p PathSet) Sorted() []string {
	paths := make([]string, 0, len(p))
	for path := range p {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// PermissionSet unions the user's personal collection tree with every path
// granted to the user's groups. Two queries, nothing is cached.
func (s *service) PermissionSet(ctx context.Context, userID int64) (PathSet, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.TracerUsers, "users.PermissionSet",
		attribute.Int64(telemetry.AttrUserID, userID),
	)
	defer span.End()

	personal, err := s.repos.Collections.PersonalNamespaceIDs(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	granted, err := s.repos.Permissions.ObjectsForUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	set := make(PathSet, len(personal)+len(granted))
	for _, id := range personal {
		set[models.CollectionPermissionPath(id)] = struct{}{}
	}
	for _, object := range granted {
		set[object] = struct{}{}
	}

	span.SetAttributes(attribute.Int(telemetry.AttrPermissionCount, len(set)))
	return set, nil
}
