package plan

// Unlimited marks a quota dimension that never blocks.
const Unlimited = -1

type Tier string

const (
	TierFree    Tier = "free"
	TierStarter Tier = "starter"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Quota is the set of ceilings a venue's subscription tier grants.
// Quotas are static domain configuration: the workflow engine only reads
// them, and usage counters live with the persistence layer.
type Quota struct {
	Tier                    Tier `json:"tier"`
	MonthlyEvents           int  `json:"monthlyEvents"`
	ModificationsPerRequest int  `json:"modificationsPerRequest"`
}

var quotasByTier = map[Tier]Quota{
	TierFree:    {Tier: TierFree, MonthlyEvents: 1, ModificationsPerRequest: 1},
	TierStarter: {Tier: TierStarter, MonthlyEvents: 2, ModificationsPerRequest: 3},
	TierPro:     {Tier: TierPro, MonthlyEvents: Unlimited, ModificationsPerRequest: Unlimited},
	TierPremium: {Tier: TierPremium, MonthlyEvents: Unlimited, ModificationsPerRequest: Unlimited},
}

// ForTier maps a plan identifier to its quota. Plan identifiers come from a
// trusted internal source, but drift must not crash: unrecognized values
// degrade to the most restrictive tier (free).
func ForTier(tier string) Quota {
	if q, ok := quotasByTier[Tier(tier)]; ok {
		return q
	}
	return quotasByTier[TierFree]
}

// AllowsConfirmation reports whether another event may be confirmed this
// month given the number already confirmed.
func (q Quota) AllowsConfirmation(confirmedThisMonth int) bool {
	return q.MonthlyEvents == Unlimited || confirmedThisMonth < q.MonthlyEvents
}

// AllowsModification reports whether a request may consume another term edit.
func (q Quota) AllowsModification(modificationsUsed int) bool {
	return q.ModificationsPerRequest == Unlimited || modificationsUsed < q.ModificationsPerRequest
}
