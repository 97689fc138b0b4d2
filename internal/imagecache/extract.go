package imagecache

import "regexp"

// 两种已知的分享链接形态：.../d/<id>/... 与 ...?id=<id>
var resourceIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
}

// ExtractResourceID 从图片链接中解析资源 ID；都不匹配时 ok=false，
// 调用方应回退为原始链接或不显示图片
func ExtractResourceID(rawURL string) (id string, ok bool) {
	for _, re := range resourceIDPatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}
