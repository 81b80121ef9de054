package oop

import "addy/types"

// TypeInfo builds the reflection object describing c: an instance of the
// predefined TypeInfo class whose read-only properties are filled in from
// the class layout
func (r *Registry) TypeInfo(c *Class) (*types.ObjValue, error) {
	info, err := r.instance(ClassTypeInfo)
	if err != nil {
		return nil, err
	}

	superType := types.Value(types.Void)
	if c.super != nil {
		superType = types.NewStr(c.super.name)
	}
	ctor, err := r.methodInfo(c.ctor)
	if err != nil {
		return nil, err
	}
	indexer := types.Value(types.Void)
	if c.indexer != nil {
		if indexer, err = r.propertyInfo(c.indexer); err != nil {
			return nil, err
		}
	}

	fields, err := infoList(c.fields.Items(), r.fieldInfo)
	if err != nil {
		return nil, err
	}
	props, err := infoList(c.properties.Items(), r.propertyInfo)
	if err != nil {
		return nil, err
	}
	methods, err := infoList(c.methods.Items(), r.methodInfo)
	if err != nil {
		return nil, err
	}
	events, err := infoList(c.events.Items(), r.eventInfo)
	if err != nil {
		return nil, err
	}

	info.SetField("__superType", superType)
	info.SetField(BackingFieldName("modifier"), types.NewStr(c.modifier.String()))
	info.SetField(BackingFieldName("name"), types.NewStr(c.name))
	info.SetField(BackingFieldName("constructor"), ctor)
	info.SetField(BackingFieldName("indexer"), indexer)
	info.SetField(BackingFieldName("fields"), fields)
	info.SetField(BackingFieldName("properties"), props)
	info.SetField(BackingFieldName("methods"), methods)
	info.SetField(BackingFieldName("events"), events)
	info.SetField(BackingFieldName("attributes"), types.NewList(c.attrs...))
	return info, nil
}

func (r *Registry) instance(id types.ClassID) (*types.ObjValue, error) {
	c, ok := r.ByID(id)
	if !ok {
		return nil, types.Errorf(types.E_MEMBERNF, "class %d is not registered", id)
	}
	return c.NewInstance()
}

func infoList[T Member](members []T, describe func(T) (types.Value, error)) (*types.ListValue, error) {
	list := types.NewEmptyList()
	for _, m := range members {
		info, err := describe(m)
		if err != nil {
			return nil, err
		}
		list.Append(info)
	}
	return list, nil
}

// memberInfo fills the fields every MemberInfo shares
func (r *Registry) memberInfo(id types.ClassID, m Member) (*types.ObjValue, error) {
	info, err := r.instance(id)
	if err != nil {
		return nil, err
	}
	holder := types.Value(types.Void)
	if c, ok := r.ByID(m.Holder()); ok {
		holder = types.NewStr(c.name)
	}
	info.SetField("__holder", holder)
	info.SetField(BackingFieldName("scope"), types.NewStr(m.Scope().String()))
	info.SetField(BackingFieldName("modifier"), types.NewStr(m.Modifier().String()))
	info.SetField(BackingFieldName("name"), types.NewStr(m.Name()))
	info.SetField(BackingFieldName("attributes"), types.NewList(m.Attributes()...))
	return info, nil
}

func (r *Registry) fieldInfo(f *Field) (types.Value, error) {
	info, err := r.memberInfo(ClassFieldInfo, f)
	if err != nil {
		return nil, err
	}
	shared := types.Value(types.Void)
	if f.shared != nil {
		shared = f.shared.Load()
	}
	info.SetField(BackingFieldName("sharedValue"), shared)
	return info, nil
}

func (r *Registry) propertyInfo(p *Property) (types.Value, error) {
	info, err := r.memberInfo(ClassPropertyInfo, p)
	if err != nil {
		return nil, err
	}
	reader, err := r.accessorInfo(p.reader)
	if err != nil {
		return nil, err
	}
	writer, err := r.accessorInfo(p.writer)
	if err != nil {
		return nil, err
	}
	info.SetField(BackingFieldName("reader"), reader)
	info.SetField(BackingFieldName("writer"), writer)
	return info, nil
}

func (r *Registry) accessorInfo(m *Method) (types.Value, error) {
	if m == nil {
		return types.Void, nil
	}
	return r.methodInfo(m)
}

func (r *Registry) methodInfo(m *Method) (types.Value, error) {
	info, err := r.memberInfo(ClassMethodInfo, m)
	if err != nil {
		return nil, err
	}
	params, err := r.parameterInfos(m.fn.Params)
	if err != nil {
		return nil, err
	}
	info.SetField(BackingFieldName("parameters"), params)
	return info, nil
}

func (r *Registry) eventInfo(e *Event) (types.Value, error) {
	info, err := r.memberInfo(ClassEventInfo, e)
	if err != nil {
		return nil, err
	}
	params, err := r.parameterInfos(e.params)
	if err != nil {
		return nil, err
	}
	info.SetField(BackingFieldName("parameters"), params)
	return info, nil
}

func (r *Registry) parameterInfos(params []types.Parameter) (*types.ListValue, error) {
	list := types.NewEmptyList()
	for _, p := range params {
		info, err := r.instance(ClassParameterInfo)
		if err != nil {
			return nil, err
		}
		def := types.Value(types.Void)
		if p.Default != nil {
			def = p.Default
		}
		info.SetField(BackingFieldName("name"), types.NewStr(p.Name))
		info.SetField(BackingFieldName("byRef"), types.NewBool(p.ByRef))
		info.SetField(BackingFieldName("vaList"), types.NewBool(p.VaList))
		info.SetField(BackingFieldName("defaultValue"), def)
		info.SetField(BackingFieldName("canBeEmpty"), types.NewBool(p.CanBeEmpty))
		info.SetField(BackingFieldName("attributes"), types.NewEmptyList())
		list.Append(info)
	}
	return list, nil
}
