package router

import (
	"sort"

	httpez "go-gin-jobboard/internal/transport/http/ez"
)

// APIModule 模块可选择实现其中一个或两个接口
type APIModule interface{ MountAPI(httpez.EZ) }
type AdminModule interface{ MountAdmin(httpez.EZ) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// mountAPI 在 /api/v1 上按优先级挂载所有 API 模块
func mountAPI(e httpez.EZ, mods ...any) {
	for _, m := range sorted(mods) {
		if am, ok := m.(APIModule); ok {
			am.MountAPI(e)
		}
	}
}

// mountAdmin 在 /admin/v1 上挂载所有 Admin 模块
func mountAdmin(e httpez.EZ, mods ...any) {
	for _, m := range sorted(mods) {
		if am, ok := m.(AdminModule); ok {
			am.MountAdmin(e)
		}
	}
}

func sorted(mods []any) []any {
	out := append([]any(nil), mods...)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i]) < priorityOf(out[j])
	})
	return out
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
