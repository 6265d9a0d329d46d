package harness

import (
	"bytes"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/circle"
	"github.com/roach88/circles/internal/trust"
)

// actionFunc applies one action and returns the completion result.
type actionFunc func(h *Harness, args map[string]any) (map[string]any, error)

var actions = map[string]actionFunc{
	"Catalog.setSearch":     actSetSearch,
	"Catalog.setFilters":    actSetFilters,
	"Catalog.clearFilters":  actClearFilters,
	"Catalog.toggleSort":    actToggleSort,
	"Catalog.setPage":       actSetPage,
	"Catalog.nextPage":      actNextPage,
	"Catalog.prevPage":      actPrevPage,
	"Catalog.setPageSize":   actSetPageSize,
	"Catalog.updateMembers": actUpdateMembers,
	"Catalog.deactivate":    actDeactivate,
	"Catalog.prune":         actPrune,
	"Trust.update":          actTrustUpdate,
	"Profile.join":          actProfileJoin,
	"Profile.complete":      actProfileComplete,
}

func actSetSearch(h *Harness, args map[string]any) (map[string]any, error) {
	search, err := argString(args, "search")
	if err != nil {
		return nil, err
	}
	h.catalog.SetSearch(search)
	return viewState(h.catalog), nil
}

func actSetFilters(h *Harness, args map[string]any) (map[string]any, error) {
	patch, err := decodeFilters(args)
	if err != nil {
		return nil, err
	}
	h.catalog.SetFilters(patch)
	return viewState(h.catalog), nil
}

func actClearFilters(h *Harness, _ map[string]any) (map[string]any, error) {
	h.catalog.ClearFilters()
	return viewState(h.catalog), nil
}

func actToggleSort(h *Harness, args map[string]any) (map[string]any, error) {
	raw, err := argString(args, "key")
	if err != nil {
		return nil, err
	}
	key, err := catalog.ParseSortKey(raw)
	if err != nil {
		return nil, err
	}
	h.catalog.ToggleSort(key)
	return viewState(h.catalog), nil
}

func actSetPage(h *Harness, args map[string]any) (map[string]any, error) {
	page, err := argInt(args, "page")
	if err != nil {
		return nil, err
	}
	h.catalog.SetPage(page)
	return viewState(h.catalog), nil
}

func actNextPage(h *Harness, _ map[string]any) (map[string]any, error) {
	h.catalog.NextPage()
	return viewState(h.catalog), nil
}

func actPrevPage(h *Harness, _ map[string]any) (map[string]any, error) {
	h.catalog.PrevPage()
	return viewState(h.catalog), nil
}

func actSetPageSize(h *Harness, args map[string]any) (map[string]any, error) {
	size, err := argInt(args, "size")
	if err != nil {
		return nil, err
	}
	h.catalog.SetPageSize(size)
	return viewState(h.catalog), nil
}

func actUpdateMembers(h *Harness, args map[string]any) (map[string]any, error) {
	address, err := argString(args, "address")
	if err != nil {
		return nil, err
	}
	count, err := argInt(args, "count")
	if err != nil {
		return nil, err
	}
	if count < 0 || uint64(count) > math.MaxUint32 {
		return nil, fmt.Errorf("count must be in [0, %d], got %d", uint32(math.MaxUint32), count)
	}
	applied := h.catalog.UpdateMembers(address, uint32(count))
	out := viewState(h.catalog)
	out["applied"] = applied
	return out, nil
}

func actDeactivate(h *Harness, args map[string]any) (map[string]any, error) {
	address, err := argString(args, "address")
	if err != nil {
		return nil, err
	}
	applied := h.catalog.Deactivate(address)
	out := viewState(h.catalog)
	out["applied"] = applied
	return out, nil
}

func actPrune(h *Harness, args map[string]any) (map[string]any, error) {
	address, err := argString(args, "address")
	if err != nil {
		return nil, err
	}
	applied := h.catalog.Prune(address)
	out := viewState(h.catalog)
	out["applied"] = applied
	return out, nil
}

func actTrustUpdate(h *Harness, args map[string]any) (map[string]any, error) {
	score, err := argInt(args, "score")
	if err != nil {
		return nil, err
	}
	if score < 0 {
		return nil, fmt.Errorf("score must be non-negative, got %d", score)
	}

	components := h.trust.Components()
	if raw, ok := args["components"]; ok {
		if err := decodeStrict(raw, &components); err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
	}

	var reason string
	if _, ok := args["reason"]; ok {
		if reason, err = argString(args, "reason"); err != nil {
			return nil, err
		}
	}

	h.trust.Update(uint64(score), components, reason)
	h.profile.SetTier(h.trust.Tier())
	return trustState(h.trust), nil
}

func actProfileJoin(h *Harness, args map[string]any) (map[string]any, error) {
	var contribution *circle.Amount
	if raw, ok := args["contribution"]; ok {
		amount, err := circle.ParseAmount(fmt.Sprint(raw))
		if err != nil {
			return nil, err
		}
		contribution = &amount
	}
	h.profile.RecordJoin()
	if contribution != nil {
		h.profile.RecordContribution(*contribution)
	}
	return profileState(h), nil
}

func actProfileComplete(h *Harness, _ map[string]any) (map[string]any, error) {
	h.profile.RecordCompletion()
	return profileState(h), nil
}

// viewState is the completion result of every catalog action.
func viewState(c *catalog.Catalog) map[string]any {
	return map[string]any{
		"page":       c.Page(),
		"totalPages": c.TotalPages(),
		"total":      c.TotalCount(),
		"view":       addresses(c.View()),
	}
}

func trustState(p *trust.Progression) map[string]any {
	return map[string]any{
		"score":        p.Score(),
		"tier":         p.Tier().String(),
		"trend":        string(p.Trend()),
		"scoreChange":  p.ScoreChange(),
		"pointsToNext": p.PointsToNextTier(),
	}
}

func profileState(h *Harness) map[string]any {
	totals := h.profile.Totals()
	return map[string]any{
		"address":          h.profile.Address(),
		"tier":             h.profile.Tier().String(),
		"circlesJoined":    totals.CirclesJoined,
		"circlesCompleted": totals.CirclesCompleted,
		"contributed":      totals.Contributed.String(),
		"onboarding":       h.profile.OnboardingProgress(),
	}
}

func addresses(records []circle.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Address
	}
	return out
}

// decodeFilters builds a filter patch from action args. Unknown keys are
// rejected.
func decodeFilters(args map[string]any) (catalog.Filters, error) {
	var f catalog.Filters
	if err := decodeStrict(args, &f); err != nil {
		return catalog.Filters{}, fmt.Errorf("filters: %w", err)
	}
	if f.Status != "" {
		st, err := catalog.ParseStatus(string(f.Status))
		if err != nil {
			return catalog.Filters{}, err
		}
		f.Status = st
	}
	if f.PayoutMethod != nil {
		m, err := circle.ParsePayoutMethod(string(*f.PayoutMethod))
		if err != nil {
			return catalog.Filters{}, err
		}
		f.PayoutMethod = &m
	}
	return f, nil
}

// decodeStrict re-encodes a YAML-parsed value and decodes it into out with
// KnownFields.
func decodeStrict(in any, out any) error {
	buf, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing arg %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q must be a string, got %T", key, v)
	}
	return s, nil
}

func argInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing arg %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
	case uint64:
		if n <= math.MaxInt {
			return int(n), nil
		}
	case float64:
		if n == math.Trunc(n) && n >= float64(math.MinInt) && n < -float64(math.MinInt) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("arg %q must be an integer in int range, got %v", key, v)
}
