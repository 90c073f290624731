// Package codegen renders glue fragments for tagged type definitions and
// assembles them into the generated translation unit. Rendering is pure:
// every function takes an explicit Context and returns text through a
// writer, with no template state shared between regions.
package codegen

import (
	"fmt"
	"strings"

	"github.com/rubiojr/jsglue/config"
	"github.com/rubiojr/jsglue/extract"
)

// Context carries everything the renderer needs for one region: the type
// name, classified properties, method names in discovery order, the
// constructor list, and the profile whose type names are spliced into
// the glue.
type Context struct {
	Type    string
	Props   extract.Groups
	Methods []string
	Ctors   []extract.Ctor
	HasInit bool
	Profile config.Profile
}

// NewContext builds a render context from one region's inventory. A
// region with no discovered constructor gets one implicit zero-argument
// constructor.
func NewContext(inv extract.Inventory, profile config.Profile) Context {
	methods := make([]string, len(inv.Methods))
	for i, m := range inv.Methods {
		methods[i] = m.Name
	}
	ctors := inv.Ctors
	if len(ctors) == 0 {
		ctors = []extract.Ctor{{}}
	}
	return Context{
		Type:    inv.Region.Name,
		Props:   extract.Classify(inv.Getters, inv.Setters),
		Methods: methods,
		Ctors:   ctors,
		HasInit: inv.HasInit,
		Profile: profile,
	}
}

// props returns the property emission order: the read-write group first,
// then read-only, first-seen within each.
func (c Context) props() []string {
	return append(append([]string{}, c.Props.ReadWrite...), c.Props.ReadOnly...)
}

func (c Context) writable(name string) bool {
	for _, n := range c.Props.ReadWrite {
		if n == name {
			return true
		}
	}
	return false
}

// RenderFragment renders the glue block for one region. Parts appear in
// definition-before-use order: resolve accessor, finalizer, property
// shims, method shims, class registration, constructor entry points.
func RenderFragment(c Context) string {
	w := &cWriter{}
	w.Blank()
	renderSelf(w, c)
	w.Blank()
	renderFinalizer(w, c)
	for _, name := range c.props() {
		w.Blank()
		renderGetter(w, c, name)
		if c.writable(name) {
			w.Blank()
			renderSetter(w, c, name)
		}
	}
	for _, name := range c.Methods {
		w.Blank()
		renderMethod(w, c, name)
	}
	w.Blank()
	renderClass(w, c)
	for _, ctor := range c.Ctors {
		w.Blank()
		renderCtor(w, c, ctor)
	}
	return w.String()
}

// renderSelf emits the resolve-this accessor. A receiver without the
// expected native payload stores a runtime error value through the
// exception slot and resolves to NULL.
func renderSelf(w *cWriter, c Context) {
	w.Linef("static %s *%s__self(JSContextRef ctx, JSObjectRef object, %s *exception)", c.Type, c.Type, c.Profile.ValueRef)
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = (%s *)JSObjectGetPrivate(object);", c.Type, c.Type)
	w.Linef("if (self == NULL) {")
	w.Indent()
	w.Linef("JSStringRef message = JSStringCreateWithUTF8CString(\"%s: not a native instance\");", c.Type)
	w.Linef("*exception = JSValueMakeString(ctx, message);")
	w.Linef("JSStringRelease(message);")
	w.Dedent()
	w.Linef("}")
	w.Linef("return self;")
	w.Dedent()
	w.Linef("}")
}

func renderFinalizer(w *cWriter, c Context) {
	w.Linef("static void %s__finalize(JSObjectRef object)", c.Type)
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = (%s *)JSObjectGetPrivate(object);", c.Type, c.Type)
	w.Linef("delete self;")
	w.Dedent()
	w.Linef("}")
}

// renderGetter emits a getter shim unconditionally for every property,
// including setter-only names whose getter member was never declared.
func renderGetter(w *cWriter, c Context, name string) {
	p := c.Profile
	w.Linef("static %s %s__get_%s(JSContextRef ctx, JSObjectRef object, JSStringRef propertyName, %s *exception)", p.ValueRef, c.Type, name, p.ValueRef)
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = %s__self(ctx, object, exception);", c.Type, c.Type)
	w.Linef("if (self == NULL)")
	w.Indent()
	w.Linef("return NULL;")
	w.Dedent()
	w.Linef("return self->%s%s(exception);", p.GetPrefix, name)
	w.Dedent()
	w.Linef("}")
}

func renderSetter(w *cWriter, c Context, name string) {
	p := c.Profile
	w.Linef("static %s %s__set_%s(JSContextRef ctx, JSObjectRef object, JSStringRef propertyName, %s value, %s *exception)", p.BoolType, c.Type, name, p.ValueRef, p.ValueRef)
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = %s__self(ctx, object, exception);", c.Type, c.Type)
	w.Linef("if (self == NULL)")
	w.Indent()
	w.Linef("return false;")
	w.Dedent()
	w.Linef("return self->%s%s(value, exception);", p.SetPrefix, name)
	w.Dedent()
	w.Linef("}")
}

func renderMethod(w *cWriter, c Context, name string) {
	p := c.Profile
	w.Linef("static %s %s__call_%s(JSContextRef ctx, JSObjectRef function, JSObjectRef thisObject, %s argc, const %s argv[], %s *exception)", p.ValueRef, c.Type, name, p.SizeType, p.ValueRef, p.ValueRef)
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = %s__self(ctx, thisObject, exception);", c.Type, c.Type)
	w.Linef("if (self == NULL)")
	w.Indent()
	w.Linef("return NULL;")
	w.Dedent()
	w.Linef("return self->%s%s(argc, argv, exception);", p.CallPrefix, name)
	w.Dedent()
	w.Linef("}")
}

// renderClass emits the one-time-initialized registration block: the
// property and method tables, the class definition, and its creation.
func renderClass(w *cWriter, c Context) {
	w.Linef("static JSClassRef %s__class(void)", c.Type)
	w.Linef("{")
	w.Indent()
	w.Linef("static JSClassRef classRef = NULL;")
	w.Linef("if (classRef == NULL) {")
	w.Indent()
	w.Linef("static JSStaticValue values[] = {")
	w.Indent()
	for _, name := range c.props() {
		if c.writable(name) {
			w.Linef("{ %q, %s__get_%s, %s__set_%s, kJSPropertyAttributeDontDelete },", name, c.Type, name, c.Type, name)
		} else {
			w.Linef("{ %q, %s__get_%s, NULL, kJSPropertyAttributeReadOnly | kJSPropertyAttributeDontDelete },", name, c.Type, name)
		}
	}
	w.Linef("{ NULL, NULL, NULL, 0 }")
	w.Dedent()
	w.Linef("};")
	w.Linef("static JSStaticFunction functions[] = {")
	w.Indent()
	for _, name := range c.Methods {
		w.Linef("{ %q, %s__call_%s, kJSPropertyAttributeDontDelete },", name, c.Type, name)
	}
	w.Linef("{ NULL, NULL, 0 }")
	w.Dedent()
	w.Linef("};")
	w.Linef("JSClassDefinition definition = kJSClassDefinitionEmpty;")
	w.Linef("definition.className = %q;", c.Type)
	w.Linef("definition.staticValues = values;")
	w.Linef("definition.staticFunctions = functions;")
	w.Linef("definition.finalize = %s__finalize;", c.Type)
	w.Linef("classRef = JSClassCreate(&definition);")
	w.Dedent()
	w.Linef("}")
	w.Linef("return classRef;")
	w.Dedent()
	w.Linef("}")
}

// factoryParams builds the parameter list of a constructor entry point:
// the context, the constructor's own parameters exactly as written, and
// the scripted-call tail.
func factoryParams(ctor extract.Ctor, p config.Profile) string {
	params := "JSContextRef ctx, "
	if ctor.Raw != "" {
		params += ctor.Raw + ", "
	}
	return params + fmt.Sprintf("%s argc, const %s argv[], %s *exception", p.SizeType, p.ValueRef, p.ValueRef)
}

// renderCtor emits one constructor entry point. With an initializer the
// fallible init hook runs after construction and a false result voids
// the whole call; without one, a scripted first argument is treated as a
// property bag copied onto the fresh instance.
func renderCtor(w *cWriter, c Context, ctor extract.Ctor) {
	p := c.Profile
	names := make([]string, len(ctor.Params))
	for i, param := range ctor.Params {
		names[i] = param.Name
	}

	w.Linef("JSObjectRef %s_new(%s)", c.Type, factoryParams(ctor, p))
	w.Linef("{")
	w.Indent()
	w.Linef("%s *self = new %s(%s);", c.Type, c.Type, strings.Join(names, ", "))
	w.Linef("JSObjectRef object = JSObjectMake(ctx, %s__class(), self);", c.Type)
	if c.HasInit {
		w.Linef("if (!self->%s(argc, argv, exception))", p.InitName)
		w.Indent()
		w.Linef("return NULL;")
		w.Dedent()
	} else {
		renderPropertyCopy(w, c)
	}
	w.Linef("return object;")
	w.Dedent()
	w.Linef("}")
}

func renderPropertyCopy(w *cWriter, c Context) {
	p := c.Profile
	w.Linef("if (argc > 0) {")
	w.Indent()
	w.Linef("JSObjectRef source = JSValueToObject(ctx, argv[0], exception);")
	w.Linef("if (source == NULL)")
	w.Indent()
	w.Linef("return NULL;")
	w.Dedent()
	w.Linef("JSPropertyNameArrayRef names = JSObjectCopyPropertyNames(ctx, source);")
	w.Linef("%s count = JSPropertyNameArrayGetCount(names);", p.SizeType)
	w.Linef("for (%s i = 0; i < count; i++) {", p.SizeType)
	w.Indent()
	w.Linef("JSStringRef name = JSPropertyNameArrayGetNameAtIndex(names, i);")
	w.Linef("%s value = JSObjectGetProperty(ctx, source, name, exception);", p.ValueRef)
	w.Linef("if (*exception == NULL)")
	w.Indent()
	w.Linef("JSObjectSetProperty(ctx, object, name, value, kJSPropertyAttributeNone, exception);")
	w.Dedent()
	w.Linef("if (*exception != NULL) {")
	w.Indent()
	w.Linef("JSPropertyNameArrayRelease(names);")
	w.Linef("return NULL;")
	w.Dedent()
	w.Linef("}")
	w.Dedent()
	w.Linef("}")
	w.Linef("JSPropertyNameArrayRelease(names);")
	w.Dedent()
	w.Linef("}")
}
