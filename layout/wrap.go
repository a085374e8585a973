package layout

import "strings"

// Wrap 将文本按词贪心折行：measure(当前行 + " " + 下一词) 不超过 maxWidth 时
// 继续累积，否则结束当前行并以该词开启新行。单个超宽的词独占一行，绝不在
// 词内拆分。输入没有任何词时原样返回单行，避免产生空结果。
// measure 由调用方注入，本函数与具体字体后端无关。
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
