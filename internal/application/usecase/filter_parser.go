package usecase

import (
	"strings"

	"github.com/diillson/aws-cost-report-go/internal/domain/entity"
	"github.com/diillson/aws-cost-report-go/internal/shared/types"
)

// ParseFilters interpreta "key=v1,v2;key2=v3". Chaves que nomeiam uma dimensão viram
// filtros de dimensão e as demais viram filtros de tag. "tag:<key>" força uma tag
// mesmo quando a chave coincide com uma dimensão (ex.: tag:platform). Chaves repetidas se somam.
func ParseFilters(s string) (map[entity.Dimension][]string, map[string][]string, error) {
	dimensions := map[entity.Dimension][]string{}
	tags := map[string][]string{}

	for _, predicate := range strings.Split(s, ";") {
		if strings.TrimSpace(predicate) == "" {
			continue
		}

		key, rawValues, ok := strings.Cut(predicate, "=")
		if !ok {
			return nil, nil, types.NewConfigurationError("--filters", "predicate %q is missing '=' (expected key=value[,value...])", strings.TrimSpace(predicate))
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, nil, types.NewConfigurationError("--filters", "predicate %q has an empty key", strings.TrimSpace(predicate))
		}

		values, err := splitValues(rawValues)
		if err != nil {
			return nil, nil, types.NewConfigurationError("--filters", "predicate %q: %v", strings.TrimSpace(predicate), err)
		}

		if tagKey, forced := cutTagPrefix(key); forced {
			if tagKey == "" {
				return nil, nil, types.NewConfigurationError("--filters", "predicate %q has an empty tag key", strings.TrimSpace(predicate))
			}
			tags[tagKey] = appendUnique(tags[tagKey], values...)
		} else if dim, ok := entity.LookupDimension(key); ok {
			dimensions[dim] = appendUnique(dimensions[dim], values...)
		} else {
			tags[key] = appendUnique(tags[key], values...)
		}
	}

	return dimensions, tags, nil
}

type emptyValueError struct{}

func (emptyValueError) Error() string { return "empty value" }

func splitValues(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			return nil, emptyValueError{}
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseGroupBy turns "usage_type,tag:customer" into group keys, keeping their order.
func ParseGroupBy(s string) ([]entity.GroupKey, error) {
	var keys []entity.GroupKey
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if tagKey, ok := cutTagPrefix(token); ok {
			if tagKey == "" {
				return nil, types.NewConfigurationError("--group-by", "tag group %q has an empty key", token)
			}
			keys = append(keys, entity.GroupKey{Type: entity.GroupKeyTag, Key: tagKey})
			continue
		}

		dim, ok := entity.LookupDimension(token)
		if !ok {
			return nil, types.NewConfigurationError("--group-by", "unknown group by option %q (use tag:<key> for tags; available: %s)",
				token, strings.Join(entity.KnownDimensions(), ", "))
		}
		keys = append(keys, entity.GroupKey{Type: entity.GroupKeyDimension, Key: string(dim)})
	}
	return keys, nil
}

// cutTagPrefix remove um prefixo "tag:" sem diferenciar maiúsculas.
func cutTagPrefix(s string) (string, bool) {
	if len(s) < 4 || !strings.EqualFold(s[:4], "tag:") {
		return "", false
	}
	return strings.TrimSpace(s[4:]), true
}

// ParseAccountIDs merges the single and comma-separated account flags.
func ParseAccountIDs(account, accounts string) []string {
	var ids []string
	for _, raw := range append([]string{account}, strings.Split(accounts, ",")...) {
		if id := strings.TrimSpace(raw); id != "" {
			ids = appendUnique(ids, id)
		}
	}
	return ids
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range dst {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}
