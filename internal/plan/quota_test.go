package plan

import "testing"

func TestForTier_KnownTiers(t *testing.T) {
	if q := ForTier("starter"); q.MonthlyEvents != 2 || q.ModificationsPerRequest != 3 {
		t.Fatalf("unexpected starter quota: %+v", q)
	}
	if q := ForTier("free"); q.MonthlyEvents != 1 || q.ModificationsPerRequest != 1 {
		t.Fatalf("unexpected free quota: %+v", q)
	}
	for _, tier := range []string{"pro", "premium"} {
		q := ForTier(tier)
		if q.MonthlyEvents != Unlimited || q.ModificationsPerRequest != Unlimited {
			t.Fatalf("expected %s to be unlimited: %+v", tier, q)
		}
	}
}

func TestForTier_UnknownDegradesToFree(t *testing.T) {
	for _, tier := range []string{"", "enterprise", "FREE", "gold"} {
		if q := ForTier(tier); q.Tier != TierFree {
			t.Fatalf("expected %q to degrade to free, got %s", tier, q.Tier)
		}
	}
}

func TestQuota_UnlimitedNeverBlocks(t *testing.T) {
	q := ForTier("pro")
	if !q.AllowsConfirmation(1 << 30) {
		t.Fatalf("unlimited monthly quota blocked")
	}
	if !q.AllowsModification(1 << 30) {
		t.Fatalf("unlimited modification quota blocked")
	}
}

func TestQuota_FiniteLimits(t *testing.T) {
	q := ForTier("starter")
	if !q.AllowsConfirmation(1) {
		t.Fatalf("expected 1 < 2 to be allowed")
	}
	if q.AllowsConfirmation(2) {
		t.Fatalf("expected 2 >= 2 to be blocked")
	}
}
