// Package mathx 提供评分计算共用的数值小工具
package mathx

import "math"

// Round 四舍五入，.5 向正无穷方向进位（-2.5 得 -2）
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Clamp 把 x 限制在 [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
