package main

import (
	"addy/classdef"
	"addy/oop"
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	defs := flag.String("defs", "", "YAML class definitions to load before the lookup")
	className := flag.String("class", "", "Class to describe (default: list every class)")
	inherited := flag.Bool("inherited", false, "Include members inherited from base classes")
	flag.Parse()

	reg := oop.NewRegistry()
	if *defs != "" {
		if _, err := classdef.Load(reg, *defs); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *defs, err)
			os.Exit(1)
		}
	}

	if *className == "" {
		for _, c := range reg.Classes() {
			fmt.Printf("%3d  %s\n", c.ID(), describeClass(c))
		}
		return
	}

	c, ok := reg.Lookup(*className)
	if !ok {
		fmt.Printf("Class %s not found\n", *className)
		os.Exit(1)
	}
	fmt.Println(describeClass(c))

	members := c.GetDeclaredMembers(oop.MemberAll)
	if *inherited {
		members = c.GetMembers(oop.MemberAll)
	}
	for _, m := range members {
		fmt.Printf("  %-11s %s\n", m.Kind(), describeMember(m))
	}
}

func describeClass(c *oop.Class) string {
	var sb strings.Builder
	if mod := c.Modifier(); mod != oop.ModDefault {
		sb.WriteString(mod.String() + " ")
	}
	sb.WriteString("class " + c.Name())
	if super := c.Super(); super != nil {
		sb.WriteString(" : " + super.Name())
	}
	return sb.String()
}

func describeMember(m oop.Member) string {
	parts := []string{m.Scope().String()}
	if mod := m.Modifier(); mod != oop.ModDefault {
		parts = append(parts, mod.String())
	}

	name := m.FullName()
	switch m := m.(type) {
	case *oop.Method:
		holder, _, _ := strings.Cut(m.FullName(), "::")
		name = holder + "::" + m.Function().Signature()
	case *oop.Property:
		var access []string
		if m.CanRead() {
			access = append(access, "read")
		}
		if m.CanWrite() {
			access = append(access, "write")
		}
		name += " {" + strings.Join(access, ", ") + "}"
	case *oop.Field:
		if init := m.Initial(); init != nil && init.String() != "" {
			name += " = " + init.String()
		}
	}
	return strings.Join(append(parts, name), " ")
}
