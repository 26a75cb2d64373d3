package store

import (
	"strings"

	"comunidade-inteligente/internal/model"
)

// coursesSeparator 是 users.courses 欄位的儲存格式：課程名稱以 ";" 串接
const coursesSeparator = ";"

func encodeCourses(set model.CourseSet) string {
	return strings.Join(set.Labels(), coursesSeparator)
}

// decodeCourses 忽略無法辨識的名稱
func decodeCourses(raw string) model.CourseSet {
	if raw == "" {
		return model.CourseSet{}
	}
	var courses []model.Course
	for _, label := range strings.Split(raw, coursesSeparator) {
		if c, ok := model.CourseByLabel(strings.TrimSpace(label)); ok {
			courses = append(courses, c)
		}
	}
	return model.NewCourseSet(courses...)
}
