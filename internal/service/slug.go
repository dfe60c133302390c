package service

import (
	"context"
	"fmt"
	"net/http"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/util"
	"lawfirm-cms/pkg/apierror"
)

type slugChecker func(ctx context.Context, slug string, excludeID string) (bool, error)

// resolveSlug derives a slug from the title when none is supplied and
// uniquifies a derived slug with a numeric suffix. An explicitly supplied
// slug is taken as-is and conflicts are rejected instead of mangled.
func resolveSlug(ctx context.Context, supplied string, title string, excludeID string, taken slugChecker) (string, error) {
	if supplied != "" {
		if !util.IsValidSlug(supplied) {
			return "", apierror.New("BAD_REQUEST", "slug may only contain lowercase letters, digits and hyphens", supplied, http.StatusBadRequest)
		}
		exists, err := taken(ctx, supplied, excludeID)
		if err != nil {
			return "", err
		}
		if exists {
			return "", model.ErrSlugTaken
		}
		return supplied, nil
	}

	base := util.Slugify(title)
	if base == "" {
		return "", apierror.New("BAD_REQUEST", "title does not produce a usable slug", title, http.StatusBadRequest)
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
