package entity

import (
	"encoding/json"
	"testing"
)

func TestFeatureLimitUnmarshal(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantUnlimited bool
		wantLimit     int
		wantErr       bool
	}{
		{name: "numeric limit", input: `5`, wantLimit: 5},
		{name: "zero", input: `0`, wantLimit: 0},
		{name: "unlimited keyword", input: `"unlimited"`, wantUnlimited: true},
		{name: "unknown string is zero entitlement", input: `"lots"`, wantLimit: 0},
		{name: "invalid json", input: `{`, wantErr: true},
		{name: "object is error", input: `{"n":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FeatureLimit
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", f)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.Unlimited != tt.wantUnlimited || f.Limit != tt.wantLimit {
				t.Errorf("got %+v, want unlimited=%v limit=%d", f, tt.wantUnlimited, tt.wantLimit)
			}
		})
	}
}

func TestFeatureLimitMarshalRoundTrip(t *testing.T) {
	for _, f := range []FeatureLimit{Limited(0), Limited(25), Unlimited()} {
		data, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back FeatureLimit
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if back != f {
			t.Errorf("round trip changed %+v into %+v", f, back)
		}
	}
}

func TestPlanFeaturesForCreditType(t *testing.T) {
	features := PlanFeatures{
		ResumeReviews: Limited(3),
		Interviews:    Unlimited(),
		SkillTests:    Limited(10),
	}

	if got := features.ForCreditType(CreditTypeResumeReview); got != Limited(3) {
		t.Errorf("resume reviews: got %+v", got)
	}
	if got := features.ForCreditType(CreditTypeAiInterview); !got.Unlimited {
		t.Errorf("interviews should be unlimited, got %+v", got)
	}
	if got := features.ForCreditType(CreditTypeSkillTest); got != Limited(10) {
		t.Errorf("skill tests: got %+v", got)
	}
	if got := features.ForCreditType(CreditType("BOGUS")); got != (FeatureLimit{}) {
		t.Errorf("unknown type should be zero entitlement, got %+v", got)
	}
}

func TestRazorpayPlanIdFor(t *testing.T) {
	monthly := "plan_m"
	yearly := "plan_y"
	plan := SubscriptionPlan{
		Name:                  "pro",
		RazorpayPlanIdMonthly: &monthly,
		RazorpayPlanIdYearly:  &yearly,
	}

	if got := plan.RazorpayPlanIdFor(BillingCycleMonthly); got == nil || *got != monthly {
		t.Errorf("monthly: got %v", got)
	}
	if got := plan.RazorpayPlanIdFor(BillingCycleYearly); got == nil || *got != yearly {
		t.Errorf("yearly: got %v", got)
	}

	unconfigured := SubscriptionPlan{Name: "starter"}
	if got := unconfigured.RazorpayPlanIdFor(BillingCycleMonthly); got != nil {
		t.Errorf("unconfigured plan should return nil, got %v", got)
	}
}
