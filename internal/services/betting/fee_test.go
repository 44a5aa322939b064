package betting

import "testing"

func TestSplitPot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stake      int64
		wantPayout int64
		wantFee    int64
	}{
		{name: "round_stake", stake: 5_000, wantPayout: 8_000, wantFee: 2_000},
		{name: "minimum_stake", stake: 100, wantPayout: 160, wantFee: 40},
		{name: "odd_pot_remainder_to_winner", stake: 33, wantPayout: 53, wantFee: 13},
		{name: "single_cent_stake", stake: 1, wantPayout: 2, wantFee: 0},
		{name: "large_stake", stake: 1_000_000_00, wantPayout: 1_600_000_00, wantFee: 400_000_00},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payout, fee := SplitPot(tt.stake)

			if payout != tt.wantPayout || fee != tt.wantFee {
				t.Fatalf("SplitPot(%d): want (%d, %d), got (%d, %d)",
					tt.stake, tt.wantPayout, tt.wantFee, payout, fee)
			}

			if payout+fee != tt.stake*2 {
				t.Fatalf("pot not conserved: payout %d + fee %d != pot %d", payout, fee, tt.stake*2)
			}
		})
	}
}

func TestNewInviteCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code := newInviteCode()

		if len(code) != 16 {
			t.Fatalf("invite code length: want 16, got %d (%q)", len(code), code)
		}
		if seen[code] {
			t.Fatalf("duplicate invite code after %d draws: %q", i, code)
		}

		seen[code] = true
	}
}
