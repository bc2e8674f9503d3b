package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tasktree/tasktree/internal/app"
	"github.com/tasktree/tasktree/internal/usecase"
)

// toolset holds the use cases behind the MCP tools. One instance is
// built at startup; every handler resolves its project from the
// per-call project_dir argument.
type toolset struct {
	addMainTask   *usecase.AddMainTask
	addSubTask    *usecase.AddSubTask
	addSubTasks   *usecase.AddSubTasks
	listMainTasks *usecase.ListMainTasks
	findMainTasks *usecase.FindMainTasks
	listSubTasks  *usecase.ListSubTasks
	getTask       *usecase.GetTask
	startOrResume *usecase.StartOrResume
	completeTask  *usecase.CompleteTask
	deleteAll     *usecase.DeleteAllTasks
}

func newToolset(c *app.Container) *toolset {
	return &toolset{
		addMainTask:   usecase.NewAddMainTask(c.Projects, c.Clock),
		addSubTask:    usecase.NewAddSubTask(c.Projects, c.Clock),
		addSubTasks:   usecase.NewAddSubTasks(c.Projects, c.Clock),
		listMainTasks: usecase.NewListMainTasks(c.Projects),
		findMainTasks: usecase.NewFindMainTasks(c.Projects),
		listSubTasks:  usecase.NewListSubTasks(c.Projects),
		getTask:       usecase.NewGetTask(c.Projects),
		startOrResume: usecase.NewStartOrResume(c.Projects, c.Clock),
		completeTask:  usecase.NewCompleteTask(c.Projects, c.Clock),
		deleteAll:     usecase.NewDeleteAllTasks(c.Projects),
	}
}

// resultJSON renders a response payload as a JSON text result.
func resultJSON(v any) (*mcp.CallToolResult, error) {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(content)), nil
}

// toolError converts a domain error into a tool error result. Domain
// failures are reported to the caller, never as protocol errors.
func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// === add_main_task ===

func (t *toolset) addMainTaskTool() mcp.Tool {
	return mcp.NewTool("add_main_task",
		mcp.WithDescription("Add a main task to the project and return it with its assigned id."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name of the main task.")),
		mcp.WithString("description", mcp.Description("The description of the main task.")),
	)
}

func (t *toolset) handleAddMainTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	name, err := req.RequireString("name")
	if err != nil {
		return toolError(err)
	}

	out, err := t.addMainTask.Execute(ctx, usecase.AddMainTaskInput{
		ProjectDir:  projectDir,
		Name:        name,
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"task": out.Task})
}

// === add_sub_task ===

func (t *toolset) addSubTaskTool() mcp.Tool {
	return mcp.NewTool("add_sub_task",
		mcp.WithDescription("Add a sub-task under a main task at an explicit parent path and sibling position."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithNumber("main_task_id", mcp.Required(), mcp.Description("The id of the main task.")),
		mcp.WithString("parent_path", mcp.Description("Hierarchical id of the parent node; omit for the main task root.")),
		mcp.WithNumber("sub_task_number", mcp.Required(), mcp.Description("Sibling position of the new sub-task (positive integer).")),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name of the sub-task.")),
	)
}

func (t *toolset) handleAddSubTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	mainTaskID, err := req.RequireInt("main_task_id")
	if err != nil {
		return toolError(err)
	}
	number, err := req.RequireInt("sub_task_number")
	if err != nil {
		return toolError(err)
	}
	name, err := req.RequireString("name")
	if err != nil {
		return toolError(err)
	}

	out, err := t.addSubTask.Execute(ctx, usecase.AddSubTaskInput{
		ProjectDir:    projectDir,
		MainTaskID:    mainTaskID,
		ParentPath:    req.GetString("parent_path", ""),
		SubTaskNumber: number,
		Name:          name,
	})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"task": out.Task, "path": out.Path})
}

// === add_sub_tasks ===

type addSubTasksArgs struct {
	ProjectDir string                    `json:"project_dir"`
	SubTasks   []usecase.NumberedSubTask `json:"sub_tasks"`
	MainTaskID int                       `json:"main_task_id"`
}

func (t *toolset) addSubTasksTool() mcp.Tool {
	return mcp.NewTool("add_sub_tasks",
		mcp.WithDescription("Add multiple numbered sub-tasks under a main task in one atomic operation."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithNumber("main_task_id", mcp.Required(), mcp.Description("The id of the main task.")),
		mcp.WithArray("sub_tasks", mcp.Required(),
			mcp.Description("Sub-tasks to create, each with a dot-separated number relative to the main task and a name."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"number": map[string]any{"type": "string", "description": "Hierarchical number, e.g. \"2.1\"."},
					"name":   map[string]any{"type": "string", "description": "Sub-task name."},
				},
				"required": []string{"number", "name"},
			}),
		),
	)
}

func (t *toolset) handleAddSubTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args addSubTasksArgs
	if err := req.BindArguments(&args); err != nil {
		return toolError(err)
	}
	if args.ProjectDir == "" {
		return toolError(fmt.Errorf("project_dir is required"))
	}

	out, err := t.addSubTasks.Execute(ctx, usecase.AddSubTasksInput{
		ProjectDir: args.ProjectDir,
		MainTaskID: args.MainTaskID,
		SubTasks:   args.SubTasks,
	})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"paths": out.Paths})
}

// === list_main_tasks ===

func (t *toolset) listMainTasksTool() mcp.Tool {
	return mcp.NewTool("list_main_tasks",
		mcp.WithDescription("List all main tasks of the project in creation order."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
	)
}

func (t *toolset) handleListMainTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}

	out, err := t.listMainTasks.Execute(ctx, usecase.ListMainTasksInput{ProjectDir: projectDir})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"tasks": out.Tasks})
}

// === find_main_tasks ===

func (t *toolset) findMainTasksTool() mcp.Tool {
	return mcp.NewTool("find_main_tasks",
		mcp.WithDescription("Find main tasks whose name starts with the given prefix."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithString("name", mcp.Required(), mcp.Description("The name prefix to search for.")),
	)
}

func (t *toolset) handleFindMainTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	name, err := req.RequireString("name")
	if err != nil {
		return toolError(err)
	}

	out, err := t.findMainTasks.Execute(ctx, usecase.FindMainTasksInput{ProjectDir: projectDir, NamePrefix: name})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"tasks": out.Tasks})
}

// === list_sub_tasks ===

func (t *toolset) listSubTasksTool() mcp.Tool {
	return mcp.NewTool("list_sub_tasks",
		mcp.WithDescription("List the sub-tasks of a main task, flattened in traversal order."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithNumber("main_task_id", mcp.Required(), mcp.Description("The id of the main task.")),
	)
}

func (t *toolset) handleListSubTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	mainTaskID, err := req.RequireInt("main_task_id")
	if err != nil {
		return toolError(err)
	}

	out, err := t.listSubTasks.Execute(ctx, usecase.ListSubTasksInput{ProjectDir: projectDir, MainTaskID: mainTaskID})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"tasks": out.Tasks})
}

// === get_task ===

func (t *toolset) getTaskTool() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Get one task by hierarchical id: \"2\" for a main task, \"2.1.3\" for a sub-task."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("The hierarchical id of the task.")),
	)
}

func (t *toolset) handleGetTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return toolError(err)
	}

	out, err := t.getTask.Execute(ctx, usecase.GetTaskInput{ProjectDir: projectDir, Path: taskID})
	if err != nil {
		return toolError(err)
	}
	if out.MainTask != nil {
		return resultJSON(map[string]any{"task": out.MainTask, "path": out.Path})
	}
	return resultJSON(map[string]any{"task": out.SubTask, "path": out.Path})
}

// === start_or_resume_main_task ===

func (t *toolset) startOrResumeTool() mcp.Tool {
	return mcp.NewTool("start_or_resume_main_task",
		mcp.WithDescription("Start or resume a main task: returns the next non-completed leaf in traversal order, or reports the tree complete. Calling again without completing returns the same leaf."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithNumber("main_task_id", mcp.Required(), mcp.Description("The id of the main task.")),
	)
}

func (t *toolset) handleStartOrResume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	mainTaskID, err := req.RequireInt("main_task_id")
	if err != nil {
		return toolError(err)
	}

	out, err := t.startOrResume.Execute(ctx, usecase.StartOrResumeInput{ProjectDir: projectDir, MainTaskID: mainTaskID})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"result": out.Result})
}

// === complete_sub_task ===

func (t *toolset) completeTaskTool() mcp.Tool {
	return mcp.NewTool("complete_sub_task",
		mcp.WithDescription("Mark a leaf task as completed by hierarchical id. The leaf must be in_progress; ancestor statuses are re-derived."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
		mcp.WithString("task_id", mcp.Required(), mcp.Description("The hierarchical id of the leaf task.")),
	)
}

func (t *toolset) handleCompleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}
	taskID, err := req.RequireString("task_id")
	if err != nil {
		return toolError(err)
	}

	out, err := t.completeTask.Execute(ctx, usecase.CompleteTaskInput{ProjectDir: projectDir, Path: taskID})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"path": out.Path, "main_task_status": out.MainTaskStatus})
}

// === delete_all_tasks ===

func (t *toolset) deleteAllTool() mcp.Tool {
	return mcp.NewTool("delete_all_tasks",
		mcp.WithDescription("Remove every task from the project. Assigned ids are never reused."),
		mcp.WithString("project_dir", mcp.Required(), mcp.Description("The project directory absolute path.")),
	)
}

func (t *toolset) handleDeleteAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectDir, err := req.RequireString("project_dir")
	if err != nil {
		return toolError(err)
	}

	out, err := t.deleteAll.Execute(ctx, usecase.DeleteAllTasksInput{ProjectDir: projectDir})
	if err != nil {
		return toolError(err)
	}
	return resultJSON(map[string]any{"removed": out.Removed})
}
