package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry job_data.json 里的一行，键名中英混用
type Entry map[string]any

// FieldMap 目标字段 -> 按优先级排列的来源键，取第一个非空值
type FieldMap map[string][]string

var CompanyFields = FieldMap{
	"name":        {"ten_cong_ty", "companyName", "name"},
	"description": {"mo_ta", "description"},
	"size":        {"quy_mo", "size"},
	"type":        {"loai_hinh_hoat_dong", "type"},
	"address":     {"dia_chi", "address"},
	"website":     {"website"},
	"phone":       {"dien_thoai", "phone"},
	"email":       {"email"},
}

var JobFields = FieldMap{
	"title":        {"ten_cong_viec", "tieu_de", "jobTitle", "title"},
	"level":        {"level", "cap_do"},
	"salary":       {"muc_luong", "salary"},
	"location":     {"dia_diem_lam_viec", "dia_diem", "location"},
	"deadline":     {"thoi_han_tuyen_dung", "deadline"},
	"description":  {"mo_ta_cong_viec", "jobDescription", "description"},
	"requirements": {"yeu_cau_cong_viec", "yeu_cau", "requirements"},
	"benefits":     {"phuc_loi", "benefits"},
	"status":       {"status"},
}

// Get 第一个非空来源；数字按原样转字符串
func (m FieldMap) Get(e Entry, field string) string {
	for _, key := range m[field] {
		if v := scalar(e[key]); v != "" {
			return v
		}
	}
	return ""
}

func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}
