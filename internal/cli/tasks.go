package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"geotodo/pkg/capture"
	"geotodo/pkg/task"
)

var (
	addPhotoPath string
	addLatitude  float64
	addLongitude float64
)

func init() {
	addCmd.Flags().StringVar(&addPhotoPath, "photo", "", "Path to the photo to attach (required)")
	addCmd.Flags().Float64Var(&addLatitude, "lat", 0, "Latitude of the task")
	addCmd.Flags().Float64Var(&addLongitude, "lng", 0, "Longitude of the task")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		if err := a.sync.FetchAll(cmd.Context()); err != nil {
			return err
		}

		tasks := a.sync.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks yet.")
			return nil
		}
		for _, t := range tasks {
			printTask(t)
		}
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task with a photo and your location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		camera := &capture.FileCamera{Path: addPhotoPath}
		locator := &capture.FixedLocator{
			Location: task.Location{Latitude: addLatitude, Longitude: addLongitude},
			Granted:  true,
		}
		pipeline := capture.NewPipeline(camera, locator, a.client, a.alert, a.logger)

		photoURI, err := pipeline.TakePhoto(cmd.Context())
		if err != nil {
			return err
		}

		location, err := pipeline.Locate(cmd.Context())
		if err != nil {
			return err
		}

		draft := task.Task{
			Title:    args[0],
			PhotoURI: photoURI,
			Location: location,
		}
		if err := a.sync.Create(cmd.Context(), draft); err != nil {
			return err
		}

		fmt.Printf("Added. %d task(s) total.\n", len(a.sync.Tasks()))
		return nil
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		// Toggle works on the local list, so load it first.
		if err := a.sync.FetchAll(cmd.Context()); err != nil {
			return err
		}
		if err := a.sync.Toggle(cmd.Context(), args[0]); err != nil {
			return err
		}

		for _, t := range a.sync.Tasks() {
			if t.ID == args[0] {
				printTask(t)
			}
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		if err := a.requireSession(); err != nil {
			return err
		}

		if err := a.sync.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted. %d task(s) left.\n", len(a.sync.Tasks()))
		return nil
	},
}

func printTask(t task.Task) {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Title)
	if t.Location != nil {
		fmt.Printf("      at %.5f,%.5f  photo %s\n", t.Location.Latitude, t.Location.Longitude, t.PhotoURI)
	}
}
