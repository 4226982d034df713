package entities

// AllGroup is the reserved group name that selects every configured repository.
const AllGroup = "all"

// ResolveGroups expands the selected group names into an ordered list of repository
// names without duplicates. Names that are neither "all" nor a configured group are
// taken literally as repository names.
func ResolveGroups(selected []string, groups map[string][]string, allNames []string) []string {
	seen := make(map[string]struct{})
	resolved := make([]string, 0, len(allNames))

	for _, group := range selected {
		members := []string{group}
		if group == AllGroup {
			members = allNames
		} else if listed, ok := groups[group]; ok {
			members = listed
		}

		for _, name := range members {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			resolved = append(resolved, name)
		}
	}

	return resolved
}
