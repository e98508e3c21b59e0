package registry

import (
	"go.uber.org/zap"
	"slices"
)

// AddType registers a type without extensions. Adding a registered type does nothing.
func (r *Registry) AddType(typ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.ensureType("AddType", typ, "")
	return err
}

// ensureType returns the record of typ, registering it when unknown.
// It fails when typ is empty or an alias.
func (r *Registry) ensureType(op, typ, value string) (*typeRecord, error) {
	key := normalizeType(typ)
	if key == "" {
		return nil, mappingError(op, typ, value, ErrEmptyKey)
	}

	rk := r.state.resolve(key)
	switch rk.kind {
	case kindType:
		t, _ := r.state.types.get(key)
		return t, nil
	case kindAlias:
		return nil, mappingError(op, typ, value, ErrIsAlias)
	}

	t := &typeRecord{}
	r.state.types.set(key, t)
	return t, nil
}

// AddTypeDescription appends a description to a type, registering the type if needed.
// The first description is the short one, the second a long one.
// It fails if typ is an alias.
func (r *Registry) AddTypeDescription(typ string, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.ensureType("AddTypeDescription", typ, text)
	if err != nil {
		return err
	}

	t.descriptions = appendUnique(t.descriptions, text)
	return nil
}

// AddTypeAlias makes alias a synonym of typ.
// It fails if typ is not a registered type, if alias is a registered type or if alias
// already belongs to another type. Adding an existing alias of typ does nothing.
func (r *Registry) AddTypeAlias(typ string, alias string) error {
	const op = "AddTypeAlias"

	r.mu.Lock()
	defer r.mu.Unlock()

	rt := r.state.resolve(normalizeType(typ))
	switch rt.kind {
	case kindUnknown:
		return mappingError(op, typ, alias, ErrUnknownType)
	case kindAlias:
		return mappingError(op, typ, alias, ErrIsAlias)
	}

	aliasKey := normalizeType(alias)
	if aliasKey == "" {
		return mappingError(op, typ, alias, ErrEmptyKey)
	}

	ra := r.state.resolve(aliasKey)
	switch ra.kind {
	case kindType:
		return mappingError(op, typ, alias, ErrIsType)
	case kindAlias:
		if ra.canonical == rt.key {
			return nil
		}
		return mappingError(op, typ, alias, ErrAliasConflict)
	}

	t, _ := r.state.types.get(rt.key)
	t.aliases = append(t.aliases, aliasKey)
	r.state.aliases.set(aliasKey, &aliasRecord{canonical: rt.key})
	return nil
}

// AddTypeExtensionMapping associates typ with ext in both directions, registering the type
// if needed. Earlier mappings take precedence, the first one being the default.
// It fails if typ is an alias.
func (r *Registry) AddTypeExtensionMapping(typ string, ext string) error {
	const op = "AddTypeExtensionMapping"

	r.mu.Lock()
	defer r.mu.Unlock()

	extKey := normalizeExtension(ext)
	if extKey == "" {
		return mappingError(op, typ, ext, ErrEmptyKey)
	}

	t, err := r.ensureType(op, typ, ext)
	if err != nil {
		return err
	}

	typeKey := normalizeType(typ)
	e, ok := r.state.extensions.get(extKey)
	if !ok {
		e = &extensionRecord{}
		r.state.extensions.set(extKey, e)
	}

	t.extensions = appendUnique(t.extensions, extKey)
	e.types = appendUnique(e.types, typeKey)
	return nil
}

// SetTypeDefaultExtension makes ext the default extension of typ.
// When typ is an alias, ext is made the default among the extensions of the alias.
// It fails if typ and ext are not associated.
func (r *Registry) SetTypeDefaultExtension(typ string, ext string) error {
	const op = "SetTypeDefaultExtension"

	r.mu.Lock()
	defer r.mu.Unlock()

	extKey := normalizeExtension(ext)
	rt := r.state.resolve(normalizeType(typ))

	var list []string
	switch rt.kind {
	case kindUnknown:
		return mappingError(op, typ, ext, ErrUnknownType)
	case kindType:
		t, _ := r.state.types.get(rt.key)
		list = t.extensions
	case kindAlias:
		a, _ := r.state.aliases.get(rt.key)
		list = a.extensions
	}

	if !moveToFront(list, extKey) {
		return mappingError(op, typ, ext, ErrNotAssociated)
	}

	return nil
}

// SetExtensionDefaultType makes typ the default type of ext.
//
// When typ is an alias, its canonical type must be associated with ext. The alias is then
// associated with ext itself and becomes the default, leaving the associations of the
// canonical type untouched.
func (r *Registry) SetExtensionDefaultType(ext string, typ string) error {
	const op = "SetExtensionDefaultType"

	r.mu.Lock()
	defer r.mu.Unlock()

	extKey := normalizeExtension(ext)
	e, ok := r.state.extensions.get(extKey)
	if !ok {
		return mappingError(op, ext, typ, ErrNotAssociated)
	}

	rt := r.state.resolve(normalizeType(typ))
	switch rt.kind {
	case kindUnknown:
		return mappingError(op, ext, typ, ErrUnknownType)
	case kindType:
		if !moveToFront(e.types, rt.key) {
			return mappingError(op, ext, typ, ErrNotAssociated)
		}
	case kindAlias:
		canonical, _ := r.state.types.get(rt.canonical)
		if !slices.Contains(canonical.extensions, extKey) {
			return mappingError(op, ext, typ, ErrNotAssociated)
		}

		a, _ := r.state.aliases.get(rt.key)
		a.extensions = appendUnique(a.extensions, extKey)
		e.types = appendUnique(e.types, rt.key)
		moveToFront(e.types, rt.key)
	}

	return nil
}

// RemoveType removes a type together with its extension mappings and aliases.
// Extensions that are left without any type are removed as well.
// Returns false if typ is not a registered type.
func (r *Registry) RemoveType(typ string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt := r.state.resolve(normalizeType(typ))
	if rt.kind != kindType {
		return false
	}

	t, _ := r.state.types.get(rt.key)
	for _, alias := range t.aliases {
		r.removeAlias(alias)
	}

	for _, ext := range append([]string(nil), t.extensions...) {
		r.state.unlinkExtension(&t.extensions, rt.key, ext)
	}

	r.state.types.delete(rt.key)
	r.logger.Debug(
		"removed type",
		zap.String("type", rt.key),
		zap.Strings("aliases", t.aliases),
	)
	return true
}

// removeAlias drops the alias record and the extensions linked to the alias.
// The alias is not removed from the alias list of its type.
func (r *Registry) removeAlias(alias string) {
	a, ok := r.state.aliases.get(alias)
	if !ok {
		return
	}

	for _, ext := range append([]string(nil), a.extensions...) {
		r.state.unlinkExtension(&a.extensions, alias, ext)
	}
	r.state.aliases.delete(alias)
}

// RemoveTypeAlias removes alias from typ, including the extensions associated with the
// alias. Returns false if alias was not an alias of typ.
func (r *Registry) RemoveTypeAlias(typ string, alias string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt := r.state.resolve(normalizeType(typ))
	ra := r.state.resolve(normalizeType(alias))
	if rt.kind != kindType || ra.kind != kindAlias || ra.canonical != rt.key {
		return false
	}

	t, _ := r.state.types.get(rt.key)
	t.aliases, _ = removeValue(t.aliases, ra.key)
	r.removeAlias(ra.key)
	return true
}

// RemoveTypeExtensionMapping removes the association between typ and ext.
//
// When typ is an alias, only the association of the alias with ext is removed. Otherwise
// the associations of the aliases of typ with ext are removed too, an alias is never
// associated with an extension its type is not associated with.
//
// Returns true only if the association existed in both directions.
func (r *Registry) RemoveTypeExtensionMapping(typ string, ext string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	extKey := normalizeExtension(ext)
	rt := r.state.resolve(normalizeType(typ))

	switch rt.kind {
	case kindAlias:
		a, _ := r.state.aliases.get(rt.key)
		return r.state.unlinkExtension(&a.extensions, rt.key, extKey)
	case kindType:
		t, _ := r.state.types.get(rt.key)
		for _, alias := range t.aliases {
			if a, ok := r.state.aliases.get(alias); ok && slices.Contains(a.extensions, extKey) {
				r.state.unlinkExtension(&a.extensions, alias, extKey)
			}
		}
		return r.state.unlinkExtension(&t.extensions, rt.key, extKey)
	default:
		return false
	}
}
