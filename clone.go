package butcher

import "reflect"

// deepClone returns an owned copy of v with no shared mutable state.
// Used by the copy policy on the borrowed path and by Cow.Take.
func deepClone[T any](v T) T {
	rv := reflect.ValueOf(&v).Elem()
	out, ok := deepCloneValue(rv).Interface().(T)
	if !ok {
		// deepCloneValue preserves the input type; this is unreachable.
		return v
	}
	return out
}

// deepCloneValue recursively copies rv. Values implementing Cloner are
// copied through their Clone method. Channels and funcs are inherently
// shared and are copied by reference.
func deepCloneValue(rv reflect.Value) reflect.Value {
	if cloned, ok := cloneMethod(rv); ok {
		return cloned
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return copyValue(rv)
		}
		np := reflect.New(rv.Type().Elem())
		np.Elem().Set(deepCloneValue(rv.Elem()))
		return np

	case reflect.Slice:
		if rv.IsNil() {
			return copyValue(rv)
		}
		ns := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ns.Index(i).Set(deepCloneValue(rv.Index(i)))
		}
		return ns

	case reflect.Map:
		if rv.IsNil() {
			return copyValue(rv)
		}
		nm := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nm.SetMapIndex(deepCloneValue(iter.Key()), deepCloneValue(iter.Value()))
		}
		return nm

	case reflect.Array:
		nv := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			nv.Index(i).Set(deepCloneValue(rv.Index(i)))
		}
		return nv

	case reflect.Struct:
		// Shallow-copy first so unexported fields carry over, then
		// deep-copy the exported ones on top.
		nv := reflect.New(rv.Type()).Elem()
		nv.Set(rv)
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			if !rt.Field(i).IsExported() {
				continue
			}
			nv.Field(i).Set(deepCloneValue(rv.Field(i)))
		}
		return nv

	case reflect.Interface:
		if rv.IsNil() {
			return copyValue(rv)
		}
		nv := reflect.New(rv.Type()).Elem()
		nv.Set(deepCloneValue(rv.Elem()))
		return nv

	default:
		return copyValue(rv)
	}
}

// cloneMethod invokes v's Clone method when it matches the Cloner contract:
// no arguments, one result of the receiver's own type.
func cloneMethod(rv reflect.Value) (reflect.Value, bool) {
	switch rv.Kind() {
	case reflect.Struct, reflect.Pointer:
	default:
		return reflect.Value{}, false
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return reflect.Value{}, false
	}

	m := rv.MethodByName("Clone")
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0) != rv.Type() {
		return reflect.Value{}, false
	}
	return m.Call(nil)[0], true
}

// copyValue returns a standalone shallow copy of rv.
func copyValue(rv reflect.Value) reflect.Value {
	nv := reflect.New(rv.Type()).Elem()
	nv.Set(rv)
	return nv
}
