package application

import (
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

// scopedFilter translates the caller's identity, role, and raw query
// parameters into a repository filter.
//
// Customers are always pinned to their own orders; whatever filter
// parameters they supply cannot widen that scope. Elevated roles see every
// customer's orders and may narrow by a valid status value; an unknown
// status is ignored rather than rejected.
func scopedFilter(actor ports.Actor, query ports.ListQuery) (ports.ListFilter, pagination.Request) {
	page := pagination.Request{Page: query.Page, PageSize: query.PageSize}.Normalize()

	if !actor.Role.Elevated() {
		return ports.ListFilter{CustomerID: actor.Identity}, page
	}

	filter := ports.ListFilter{}
	if status, err := domain.ParseStatus(query.Status); err == nil {
		filter.Status = status
	}
	return filter, page
}
