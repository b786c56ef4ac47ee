package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zintix-labs/lottolab/draw"
)

// UniformityTest 號碼分布對均勻分布的卡方適合度檢定
type UniformityTest struct {
	Statistic float64 `json:"statistic"`
	DoF       int     `json:"dof"`
	PValue    float64 `json:"p_value"`
	Expected  float64 `json:"expected"` // 每個號碼的期望次數
	Uniform   bool    `json:"uniform"`  // p >= Alpha 時無法拒絕均勻假設
}

// Alpha 檢定顯著水準
const Alpha = 0.05

// Uniformity 以 freq 計算卡方統計量；沒有資料時回傳零值（Uniform=true）
func Uniformity(freq *Frequency) UniformityTest {
	if freq == nil || freq.Total == 0 {
		return UniformityTest{DoF: draw.MaxNumber - 1, PValue: 1, Uniform: true}
	}
	obs := make([]float64, draw.MaxNumber)
	exp := make([]float64, draw.MaxNumber)
	e := float64(freq.Total) / float64(draw.MaxNumber)
	for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
		obs[n-1] = float64(freq.Counts[n])
		exp[n-1] = e
	}
	chi := stat.ChiSquare(obs, exp)
	dof := draw.MaxNumber - 1
	p := distuv.ChiSquared{K: float64(dof)}.Survival(chi)
	return UniformityTest{
		Statistic: round2(chi),
		DoF:       dof,
		PValue:    round4(p),
		Expected:  round2(e),
		Uniform:   p >= Alpha,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
