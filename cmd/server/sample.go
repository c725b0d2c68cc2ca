package main

import (
	"context"
	"fmt"

	"github.com/dailyjournal/internal/db"
	"github.com/spf13/cobra"
)

// 示例文章，用于本地开发时快速填充首页
var samplePosts = []db.Post{
	{
		Title:   "Hello World",
		Content: "Welcome to the journal. This first entry exists so the home page has something to show.",
	},
	{
		Title:   "Writing in Markdown",
		Content: "Post bodies are **markdown**.\n\n- lists\n- `inline code`\n- [links](https://commonmark.org)\n\nEverything is sanitized before it is rendered.",
	},
	{
		Title:   "Slugs and Titles",
		Content: "Every post is reachable at /posts/ followed by its title. Case, spaces, dashes and underscores do not matter: /posts/slugs-and-titles and /posts/Slugs_And_Titles open this page.",
	},
	{
		Title:   "Where the Data Lives",
		Content: "Posts and pages are kept in sqlite by default. Set MONGO_URI to keep them in MongoDB instead.",
	},
}

var samplePostsCmd = &cobra.Command{
	Use:   "sample-posts",
	Short: "Insert a few sample posts into an empty store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, _, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		inserted, err := insertSamplePosts(ctx, store.Posts)
		if err != nil {
			return err
		}
		if inserted == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "posts already exist, skipping")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inserted %d sample posts\n", inserted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(samplePostsCmd)
}

// insertSamplePosts writes samplePosts unless the collection already has posts.
func insertSamplePosts(ctx context.Context, posts db.Collection[db.Post]) (int, error) {
	count, err := posts.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	batch := make([]db.Post, len(samplePosts))
	copy(batch, samplePosts)
	if err := posts.InsertMany(ctx, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}
