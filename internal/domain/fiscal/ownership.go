package fiscal

import (
	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Owner is a member of the owner roster
type Owner struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OwnershipLink states the percentage of a property held by one owner
type OwnershipLink struct {
	PropertyID uuid.UUID       `json:"property_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Share      decimal.Decimal `json:"share"`
}

// AllocationSource tells which rule produced an allocation
type AllocationSource string

const (
	AllocationDirect     AllocationSource = "DIRECT"      // Owner and share carried on the record
	AllocationProperty   AllocationSource = "PROPERTY"    // Ownership links of the record's property
	AllocationEqualSplit AllocationSource = "EQUAL_SPLIT" // Company-wide record split across the roster
	AllocationNone       AllocationSource = "NONE"        // Excluded from owner summaries
)

// OwnerShare is one owner's percentage of a record
type OwnerShare struct {
	OwnerID uuid.UUID       `json:"owner_id"`
	Share   decimal.Decimal `json:"share"`
}

// Contribution returns the owner's part of amount, rounded to cents
func (s OwnerShare) Contribution(amount decimal.Decimal) decimal.Decimal {
	return valueobject.ApplyPercent(amount, s.Share)
}

// Allocation is the resolved owner split of one record
type Allocation struct {
	Source AllocationSource `json:"source"`
	Shares []OwnerShare     `json:"shares"`
}

// Split divides amount among the shares. Each part is rounded to cents and the
// last share takes the rounding remainder, so the parts add up to the amount
// covered by the shares.
func (a Allocation) Split(amount decimal.Decimal) []decimal.Decimal {
	if len(a.Shares) == 0 {
		return nil
	}
	covered := decimal.Zero
	for _, share := range a.Shares {
		covered = covered.Add(share.Share)
	}
	target := valueobject.ApplyPercent(amount, covered)

	parts := make([]decimal.Decimal, len(a.Shares))
	assigned := decimal.Zero
	last := len(a.Shares) - 1
	for i := 0; i < last; i++ {
		parts[i] = a.Shares[i].Contribution(amount)
		assigned = assigned.Add(parts[i])
	}
	parts[last] = target.Sub(assigned)
	return parts
}

// Allocator resolves which owners a record is attributed to
type Allocator struct {
	roster     []Owner
	byProperty map[uuid.UUID][]OwnershipLink
}

// NewAllocator builds an allocator over the owner roster and ownership links
func NewAllocator(roster []Owner, links []OwnershipLink) *Allocator {
	byProperty := make(map[uuid.UUID][]OwnershipLink)
	for _, l := range links {
		byProperty[l.PropertyID] = append(byProperty[l.PropertyID], l)
	}
	return &Allocator{roster: roster, byProperty: byProperty}
}

// Allocate applies, in order: the record's own owner and share, the property's
// ownership links, the equal split for records without a property. A record
// whose property has no resolvable link is allocated to nobody.
func (a *Allocator) Allocate(r *FiscalRecord) Allocation {
	if r.OwnerID != nil && r.OwnershipShare != nil && r.OwnershipShare.IsPositive() {
		return Allocation{
			Source: AllocationDirect,
			Shares: []OwnerShare{{OwnerID: *r.OwnerID, Share: *r.OwnershipShare}},
		}
	}

	if r.PropertyID == nil {
		if len(a.roster) == 0 {
			return Allocation{Source: AllocationNone}
		}
		split := EqualSplit(len(a.roster))
		shares := make([]OwnerShare, len(a.roster))
		for i, o := range a.roster {
			shares[i] = OwnerShare{OwnerID: o.ID, Share: split[i]}
		}
		return Allocation{Source: AllocationEqualSplit, Shares: shares}
	}

	var shares []OwnerShare
	for _, l := range a.byProperty[*r.PropertyID] {
		if r.OwnerID != nil && l.OwnerID != *r.OwnerID {
			continue
		}
		if !l.Share.IsPositive() {
			continue
		}
		shares = append(shares, OwnerShare{OwnerID: l.OwnerID, Share: l.Share})
	}
	if len(shares) == 0 {
		return Allocation{Source: AllocationNone}
	}
	return Allocation{Source: AllocationProperty, Shares: shares}
}

// EqualSplit returns n percentages summing to exactly 100.00. The first n-1
// get floor(10000/n)/100 and the last one takes the remainder.
func EqualSplit(n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	each := decimal.New(int64(10000/n), -2)
	shares := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		shares[i] = each
	}
	shares[n-1] = fullPercentage.Sub(each.Mul(decimal.NewFromInt(int64(n - 1))))
	return shares
}
