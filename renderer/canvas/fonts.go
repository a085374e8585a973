package canvasrenderer

import (
	"fmt"
	"os"
)

// 字体发现：沿用原型的回退顺序在系统路径中查找字体文件。
// 环境变量可以显式指定字体文件，不做字体内嵌。
const (
	envFontRegular = "TRADESNAP_FONT"
	envFontBold    = "TRADESNAP_FONT_BOLD"
)

var regularFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

var boldFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
}

// discoverFont 返回第一个可读的候选字体文件内容。
func discoverFont(envKey string, candidates []string) ([]byte, error) {
	if path := os.Getenv(envKey); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取 %s 指定的字体 %s 失败: %w", envKey, path, err)
		}
		return data, nil
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data, nil
		}
	}
	return nil, fmt.Errorf("在候选路径中找不到可用字体（可通过 %s 指定）", envKey)
}
