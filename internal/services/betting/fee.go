package betting

// FeeRatePercent is the platform's cut of the total pot at settlement.
const FeeRatePercent = 20

// SplitPot divides the doubled stake into winner payout and platform
// fee. The fee rounds down to the cent, so any odd remainder goes to
// the winner; payout + fee always equals the pot exactly.
func SplitPot(stake int64) (payout, fee int64) {
	pot := stake * 2
	fee = pot * FeeRatePercent / 100

	return pot - fee, fee
}
