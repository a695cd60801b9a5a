/*
Package registry keeps the schema descriptors a program works with.

A Registry is an explicit value, not package state. Models are registered by
name, either in code:

	reg := registry.New()
	users, err := reg.RegisterDefinition(schema.Definition{
	    Name:         "users",
	    TableName:    "users",
	    PartitionKey: "id",
	})

or from a YAML definitions file:

	err := reg.LoadYAMLFile("models.yaml")

A Go type can be bound to a registered model so typed wrappers can find it:

	err := registry.Bind[User](reg, "users")
	desc, ok := registry.DescriptorFor[User](reg)
*/
package registry
