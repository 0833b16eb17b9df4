package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ychoi-kr/wikidocs-mcp/internal/wikidocs"
)

type blogListArgs struct {
	Page int `json:"page,omitempty" jsonschema:"1-based listing page number (default 1)"`
}

type blogPostArgs struct {
	BlogID int `json:"blog_id" jsonschema:"ID of the blog post"`
}

type createBlogPostArgs struct {
	Title    string `json:"title" jsonschema:"post title"`
	Content  string `json:"content" jsonschema:"post body in markdown"`
	IsPublic *bool  `json:"is_public,omitempty" jsonschema:"whether the post is public (default true)"`
	Tags     string `json:"tags,omitempty" jsonschema:"comma-separated tags"`
}

type updateBlogPostArgs struct {
	BlogID   int    `json:"blog_id" jsonschema:"ID of the post to update"`
	Title    string `json:"title" jsonschema:"new post title"`
	Content  string `json:"content" jsonschema:"new post body in markdown"`
	IsPublic *bool  `json:"is_public,omitempty" jsonschema:"whether the post is public (default true)"`
	Tags     string `json:"tags,omitempty" jsonschema:"comma-separated tags"`
}

type uploadBlogImageArgs struct {
	BlogID   int    `json:"blog_id" jsonschema:"ID of the blog post the image belongs to"`
	FilePath string `json:"file_path" jsonschema:"local path of the image file to upload"`
}

func registerBlogTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_blog_profile",
		Description: "Get the authenticated user's blog profile.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args struct{}) (*mcp.CallToolResult, any, error) {
		profile, err := deps.Client.BlogProfile(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, profile, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_blog_list",
		Description: "List blog posts, one listing page at a time.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args blogListArgs) (*mcp.CallToolResult, any, error) {
		list, err := deps.Client.ListBlogPosts(ctx, args.Page)
		if err != nil {
			return nil, nil, err
		}
		return nil, list, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_blog_post",
		Description: "Get a single blog post by its ID.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args blogPostArgs) (*mcp.CallToolResult, any, error) {
		post, err := deps.Client.GetBlogPost(ctx, args.BlogID)
		if err != nil {
			return nil, nil, err
		}
		return nil, post, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_blog_post",
		Description: "Create a new blog post.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createBlogPostArgs) (*mcp.CallToolResult, any, error) {
		result, err := deps.Client.CreateBlogPost(ctx, wikidocs.BlogPostRequest{
			Title:    args.Title,
			Content:  args.Content,
			IsPublic: args.IsPublic == nil || *args.IsPublic,
			Tags:     args.Tags,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_blog_post",
		Description: "Update an existing blog post.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args updateBlogPostArgs) (*mcp.CallToolResult, any, error) {
		result, err := deps.Client.UpdateBlogPost(ctx, args.BlogID, wikidocs.BlogPostRequest{
			Title:    args.Title,
			Content:  args.Content,
			IsPublic: args.IsPublic == nil || *args.IsPublic,
			Tags:     args.Tags,
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upload_blog_image",
		Description: "Upload a local image file for use in a blog post.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args uploadBlogImageArgs) (*mcp.CallToolResult, any, error) {
		result, err := deps.Client.UploadBlogImage(ctx, args.BlogID, args.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}
