package collection

import (
	"strconv"
	"strings"
)

// Named is implemented by values that carry a display name.
type Named interface {
	comparable
	GetName() string
}

// Flaggable is implemented by values that can be switched on and off.
type Flaggable interface {
	comparable
	GetIsActive() bool
}

// Departmental is implemented by values owned by a responsible department.
type Departmental interface {
	comparable
	GetResponsibleDepartment() string
}

// Sized is implemented by file-like values.
type Sized interface {
	comparable
	GetFileName() string
	GetFileSize() int64
}

// Classifiable is a Sized value that can tell images from documents.
type Classifiable interface {
	Sized
	IsValidImageType() bool
	IsValidDocumentType() bool
	GetFileExtension() string
}

// ActiveCategories returns the values whose active flag is set, in original order.
func ActiveCategories[V Flaggable](c *OrderedCollection[V]) []V {
	return c.Filter(func(v V) bool { return v.GetIsActive() })
}

// FindByName returns the first value whose name matches name, ignoring case.
func FindByName[V Named](c *OrderedCollection[V], name string) (V, bool) {
	return c.FindFunc(func(v V) bool { return strings.EqualFold(v.GetName(), name) })
}

// CategoriesByDepartment returns the values owned by department, ignoring case.
// An empty department matches nothing.
func CategoriesByDepartment[V Departmental](c *OrderedCollection[V], department string) []V {
	if department == "" {
		return []V{}
	}
	return c.Filter(func(v V) bool { return strings.EqualFold(v.GetResponsibleDepartment(), department) })
}

// AddAttachment appends value unless its file name is empty.
func AddAttachment[V Sized](c *OrderedCollection[V], value V) bool {
	if value.GetFileName() == "" {
		return false
	}
	c.Add(value)
	return true
}

// ImageFiles returns the attachments classified as images.
func ImageFiles[V Classifiable](c *OrderedCollection[V]) []V {
	return c.Filter(func(v V) bool { return v.IsValidImageType() })
}

// DocumentFiles returns the attachments classified as documents.
func DocumentFiles[V Classifiable](c *OrderedCollection[V]) []V {
	return c.Filter(func(v V) bool { return v.IsValidDocumentType() })
}

// FilesByExtension returns the attachments with the given extension. The
// leading dot is optional and the comparison ignores case.
func FilesByExtension[V Classifiable](c *OrderedCollection[V], extension string) []V {
	if extension == "" {
		return []V{}
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return c.Filter(func(v V) bool { return strings.EqualFold(v.GetFileExtension(), extension) })
}

// CalculateTotalSize sums the positive file sizes.
func CalculateTotalSize[V Sized](c *OrderedCollection[V]) int64 {
	var total int64
	for _, v := range c.GetAll() {
		if size := v.GetFileSize(); size > 0 {
			total += size
		}
	}
	return total
}

// TotalSizeFormatted renders CalculateTotalSize in human units.
func TotalSizeFormatted[V Sized](c *OrderedCollection[V]) string {
	return FormatSize(CalculateTotalSize(c))
}

var sizeUnits = []string{"bytes", "KB", "MB", "GB"}

// FormatSize scales bytes by 1024 up to GB and keeps at most two decimals,
// dropping trailing zeros: 0 -> "0 bytes", 1536 -> "1.5 KB", 2048 -> "2 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 bytes"
	}

	size := float64(bytes)
	order := 0
	for size >= 1024 && order < len(sizeUnits)-1 {
		order++
		size /= 1024
	}

	formatted := strconv.FormatFloat(size, 'f', 2, 64)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimSuffix(formatted, ".")
	return formatted + " " + sizeUnits[order]
}

// FindByFileName returns the first attachment named fileName, ignoring case.
func FindByFileName[V Sized](c *OrderedCollection[V], fileName string) (V, bool) {
	if fileName == "" {
		var zero V
		return zero, false
	}
	return c.FindFunc(func(v V) bool { return strings.EqualFold(v.GetFileName(), fileName) })
}

// RemoveByFileName unlinks the first attachment named fileName, ignoring case.
func RemoveByFileName[V Sized](c *OrderedCollection[V], fileName string) bool {
	if fileName == "" {
		return false
	}
	return c.RemoveFunc(func(v V) bool { return strings.EqualFold(v.GetFileName(), fileName) })
}
