package todos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/awessel/todo-api/cmd/cli/config"
	"github.com/awessel/todo-api/cmd/cli/output"
)

type todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// InitTodos registers todo commands on the root command.
func InitTodos(rootCmd *cobra.Command) {
	todosCmd := &cobra.Command{
		Use:   "todos",
		Short: "Manage todos",
	}
	todosCmd.AddCommand(listCmd(), createCmd(), doneCmd(), rmCmd())
	rootCmd.AddCommand(todosCmd)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			var todos []todo
			if err := call("GET", "/todo", nil, &todos); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(todos))
			for _, t := range todos {
				status := ""
				if t.Done {
					status = "done"
				}
				rows = append(rows, []interface{}{t.ID, t.Title, t.Description, status})
			}
			output.RenderTable([]string{"ID", "Title", "Description", "Status"}, rows)
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"title":       title,
				"description": description,
			}
			body, _ := json.Marshal(payload)

			var created todo
			if err := call("POST", "/todo", body, &created); err != nil {
				return err
			}
			fmt.Printf("Created todo %d: %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Todo title")
	cmd.Flags().StringVar(&description, "description", "", "Todo description")
	cmd.MarkFlagRequired("title")
	return cmd
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated todo
			if err := call("PATCH", "/todo/"+args[0]+"/done", nil, &updated); err != nil {
				return err
			}
			fmt.Printf("Todo %d marked as done\n", updated.ID)
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := call("DELETE", "/todo/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Printf("Todo %s deleted\n", args[0])
			return nil
		},
	}
}

// call performs an authenticated request and decodes a JSON response into out (when non-nil).
func call(method, path string, body []byte, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, config.APIURL()+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unexpected API response: %s", string(data))
		}
	}
	return nil
}
