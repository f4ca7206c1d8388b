package goAdmin

import (
	"context"
	"net/http"
	"net/url"
)

// AddSchoolDomainRequest is the payload for registering a new school domain.
type AddSchoolDomainRequest struct {
	Domain     string `json:"domain"`
	SchoolName string `json:"schoolName"`
}

// ListSchoolDomains returns the full, unpaginated school domain allowlist.
//
// ListSchoolDomains may return an error when input validation, dependency calls, or security checks fail.
// ListSchoolDomains does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) ListSchoolDomains(ctx context.Context) ([]SchoolDomain, error) {
	if c == nil || c.gw == nil {
		return nil, ErrEngineNotReady
	}
	path := c.adminPath("/school-domains")
	return cacheDo(c.cache, ctx, KindSchoolDomains, path, func(ctx context.Context) ([]SchoolDomain, error) {
		var domains []SchoolDomain
		err := c.gw.get(ctx, path, nil, &domains)
		return domains, err
	})
}

// AddSchoolDomain registers a new school domain and returns the created
// record.
//
// AddSchoolDomain may return an error when input validation, dependency calls, or security checks fail.
// AddSchoolDomain does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AddSchoolDomain(ctx context.Context, req AddSchoolDomainRequest) (SchoolDomain, error) {
	if c == nil || c.gw == nil {
		return SchoolDomain{}, ErrEngineNotReady
	}

	var created SchoolDomain
	if err := c.gw.post(ctx, c.adminPath("/school-domains"), req, &created); err != nil {
		c.metrics.Inc(MetricMutationFailure)
		return SchoolDomain{}, err
	}
	c.metrics.Inc(MetricMutationSuccess)
	c.cache.Invalidate(KindSchoolDomains)
	return created, nil
}

// DeleteSchoolDomain removes a school domain from the allowlist.
//
// DeleteSchoolDomain may return an error when input validation, dependency calls, or security checks fail.
// DeleteSchoolDomain does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) DeleteSchoolDomain(ctx context.Context, domainID string) error {
	return c.action(ctx, http.MethodDelete, c.adminPath("/school-domains/"+url.PathEscape(domainID)), nil, KindSchoolDomains)
}
