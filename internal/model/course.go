// File: internal/model/course.go
package model

// Course identifies one of the courses a member can mark on the profile.
type Course string

const (
	CourseExcel         Course = "excel"
	CourseVBA           Course = "vba"
	CoursePowerBI       Course = "powerbi"
	CoursePython        Course = "python"
	CoursePresentations Course = "apresentacoes"
	CourseSQL           Course = "sql"
)

var allCourses = []Course{
	CourseExcel,
	CourseVBA,
	CoursePowerBI,
	CoursePython,
	CoursePresentations,
	CourseSQL,
}

var courseLabels = map[Course]string{
	CourseExcel:         "Excel Impressionador",
	CourseVBA:           "VBA Impressionador",
	CoursePowerBI:       "Power BI Impressionador",
	CoursePython:        "Python Impressionador",
	CoursePresentations: "Apresentações Impressionadoras",
	CourseSQL:           "SQL Impressionador",
}

// Courses returns every known course in display order.
func Courses() []Course {
	out := make([]Course, len(allCourses))
	copy(out, allCourses)
	return out
}

// Label is the human readable course name.
func (c Course) Label() string {
	return courseLabels[c]
}

func (c Course) Valid() bool {
	_, ok := courseLabels[c]
	return ok
}

// CourseByLabel resolves a label back to its course.
func CourseByLabel(label string) (Course, bool) {
	for c, l := range courseLabels {
		if l == label {
			return c, true
		}
	}
	return "", false
}

// CourseSet is an ordered set of courses without duplicates.
type CourseSet []Course

// NewCourseSet keeps only known courses, in display order, each once.
func NewCourseSet(courses ...Course) CourseSet {
	seen := make(map[Course]bool, len(courses))
	for _, c := range courses {
		if c.Valid() {
			seen[c] = true
		}
	}
	set := CourseSet{}
	for _, c := range allCourses {
		if seen[c] {
			set = append(set, c)
		}
	}
	return set
}

func (s CourseSet) Has(c Course) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

// Labels returns the labels of the set, in order.
func (s CourseSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for _, c := range s {
		labels = append(labels, c.Label())
	}
	return labels
}
