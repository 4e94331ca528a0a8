package main

import (
	"github.com/awessel/todo-api/cmd/cli/auth"
	"github.com/awessel/todo-api/cmd/cli/root"
	"github.com/awessel/todo-api/cmd/cli/todos"
)

func main() {
	auth.InitAuth(root.RootCmd)
	todos.InitTodos(root.RootCmd)
	root.Execute()
}
