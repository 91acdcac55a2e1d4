package items

// ItemTypes is the fixed catalog of item kinds. The values are what
// the scouts have always used; clients filter on them verbatim.
var ItemTypes = []string{"orodje", "taborno", "pripomočki", "drugo"}

func IsValidItemType(itemType string) bool {
	for _, t := range ItemTypes {
		if t == itemType {
			return true
		}
	}
	return false
}
