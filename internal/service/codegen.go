package service

import (
	"fmt"
	"strconv"
	"strings"
)

// nextSequentialCode 按前缀流水号生成下一个代码，如 S025 -> S026、RT006 -> RT007
// 以当前最大值 +1 而非记录数 +1，软删除或断号不影响后续编码
func nextSequentialCode(prefix, current string) string {
	next := 1
	if current != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(current, prefix)); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}
