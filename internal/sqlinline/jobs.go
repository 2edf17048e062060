package sqlinline

const QEnqueueRenderJob = `--sql 49e1afc0-66a7-4e13-a6c5-4caddda6f9d3
insert into render_jobs(id, post_id, status, attempts, created_at, updated_at)
values ($1::uuid, $2::text, 'QUEUED', 0, now(), now())
returning id::text, post_id, status, attempts, coalesce(error_message, ''), created_at, updated_at;
`

const QClaimRenderJob = `--sql dae002d0-029a-4ba3-a476-e8474ca7a3cd
with next_job as (
    select id
    from render_jobs
    where status = 'QUEUED'
    order by created_at asc
    for update skip locked
    limit 1
),
updated as (
    update render_jobs
    set status = 'RUNNING', attempts = attempts + 1, updated_at = now()
    where id in (select id from next_job)
    returning id::text, post_id, status, attempts, coalesce(error_message, ''), created_at, updated_at
)
select * from updated;
`

const QFinishRenderJob = `--sql a6605197-db13-4154-a6e2-543227bd8f81
update render_jobs
set status = $2::text,
    error_message = nullif($3::text, ''),
    updated_at = now()
where id = $1::uuid;
`

const QSelectRenderJob = `--sql e7133daa-9ff7-463e-897b-2c40869534ec
select id::text, post_id, status, attempts, coalesce(error_message, ''), created_at, updated_at
from render_jobs
where id = $1::uuid
limit 1;
`

const QRequeueStaleRenderJobs = `--sql 11ddd678-49fd-4639-b51f-d8e07059ef7c
update render_jobs
set status = 'QUEUED', updated_at = now()
where status = 'RUNNING'
  and updated_at < now() - make_interval(secs => $1::int);
`
